package constants

// Sentinel terminates both the section table (last end) and the note table.
const Sentinel = 0xFFFF

const DefaultOutputSuffix = ".cht"

// 2 for the u16 word, 1 for the flag/type byte, 1 for the pad byte
const SectionSize = 4
const NoteSize = 4

// u16 section table length word
const HeaderSize = 2

const ConfigEnv = "CHARTPAK_CONFIG"
const DefaultConfigPath = "./chartpak.ini"
