package db

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/pkg/errors"

	"github.com/jsphweid/chartpak/config"
	"github.com/jsphweid/chartpak/model"
)

// MaxBatch is the most keys a single BatchGetItem accepts.
const MaxBatch = 100

// MaxRetries bounds how often unprocessed keys are requested again.
const MaxRetries = 3

// Catalog stores chart summaries keyed by chart name.
type Catalog struct {
	client     dynamodbiface.DynamoDBAPI
	table      string
	retryDelay time.Duration
}

func New(client dynamodbiface.DynamoDBAPI, table string) *Catalog {
	return &Catalog{client: client, table: table, retryDelay: 50 * time.Millisecond}
}

func Open(cfg *config.Config) (*Catalog, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.CatalogRegion)}
	if cfg.CatalogEndpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.CatalogEndpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return New(dynamodb.New(sess), cfg.CatalogTable), nil
}

func number(v float64) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatFloat(v, 'f', -1, 64))}
}

func (c *Catalog) PutSummary(s model.ChartSummary) error {
	if s.Name == "" {
		return errors.New("chart summary has no name")
	}
	item := map[string]*dynamodb.AttributeValue{
		"PK":          {S: aws.String(s.Name)},
		"Bpm":         number(s.Bpm),
		"NumSections": number(float64(s.NumSections)),
		"NumNotes":    number(float64(s.NumNotes)),
		"NumSustains": number(float64(s.NumSustains)),
		"NumOpponent": number(float64(s.NumOpponent)),
		"LastPos":     number(float64(s.LastPos)),
		"NumBytes":    number(float64(s.NumBytes)),
	}
	_, err := c.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	return errors.Wrapf(err, "could not store summary for %s", s.Name)
}

// GetSummaries fetches the stored summaries for names, MaxBatch keys per request.
// Names with no stored summary are absent from the result.
func (c *Catalog) GetSummaries(names []string) (map[string]model.ChartSummary, error) {
	res := make(map[string]model.ChartSummary)
	for start := 0; start < len(names); start += MaxBatch {
		end := start + MaxBatch
		if end > len(names) {
			end = len(names)
		}
		if err := c.getBatch(names[start:end], res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// getBatch requests keys again while DynamoDB hands some back unprocessed.
func (c *Catalog) getBatch(names []string, res map[string]model.ChartSummary) error {
	var keys []map[string]*dynamodb.AttributeValue
	for _, name := range names {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(name)},
		})
	}

	request := map[string]*dynamodb.KeysAndAttributes{
		c.table: {Keys: keys},
	}
	for attempt := 0; ; attempt++ {
		out, err := c.client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return errors.Wrap(err, "error from DynamoDB")
		}
		for _, v := range out.Responses[c.table] {
			s := parseSummary(v)
			res[s.Name] = s
		}

		pending, ok := out.UnprocessedKeys[c.table]
		if !ok || len(pending.Keys) == 0 {
			return nil
		}
		if attempt == MaxRetries {
			return errors.Errorf("%d keys still unprocessed after %d retries", len(pending.Keys), MaxRetries)
		}
		time.Sleep(c.retryDelay << attempt)
		request = map[string]*dynamodb.KeysAndAttributes{c.table: pending}
	}
}

func parseSummary(v map[string]*dynamodb.AttributeValue) model.ChartSummary {
	var s model.ChartSummary
	if pk := v["PK"]; pk != nil {
		s.Name = aws.StringValue(pk.S)
	}
	s.Bpm = parseFloat(v["Bpm"])
	s.NumSections = int(parseFloat(v["NumSections"]))
	s.NumNotes = int(parseFloat(v["NumNotes"]))
	s.NumSustains = int(parseFloat(v["NumSustains"]))
	s.NumOpponent = int(parseFloat(v["NumOpponent"]))
	s.LastPos = uint16(parseFloat(v["LastPos"]))
	s.NumBytes = int(parseFloat(v["NumBytes"]))
	return s
}

func parseFloat(v *dynamodb.AttributeValue) float64 {
	if v == nil || v.N == nil {
		return 0
	}
	f, _ := strconv.ParseFloat(*v.N, 64)
	return f
}
