package mods

import (
	"time"
)

// Category is the closed set of mod categories. The string value doubles as
// the display name and the JSON representation.
type Category string

const (
	CategoryUI       Category = "UI"
	CategoryAudio    Category = "Audio"
	CategorySkins    Category = "Skins"
	CategoryGameplay Category = "Gameplay"
)

// AllCategories lists every category in filename-keyword match order.
// The order is fixed: it decides which category wins when a filename matches
// more than one keyword list.
var AllCategories = []Category{CategoryUI, CategoryAudio, CategorySkins, CategoryGameplay}

// categoryKeywords maps each category to the filename substrings that imply it.
var categoryKeywords = map[Category][]string{
	CategoryUI:       {"ui", "hud", "menu", "interface"},
	CategoryAudio:    {"audio", "sound", "music", "voice"},
	CategorySkins:    {"skin", "costume", "outfit", "appearance"},
	CategoryGameplay: {"gameplay", "mechanic", "ability", "stat"},
}

// Keywords returns the filename keywords associated with the category.
func (c Category) Keywords() []string {
	return categoryKeywords[c]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryKeywords[c]
	return ok
}

// Character is a playable hero. The string value is the display name and the
// JSON representation (e.g. "Captain America", "Spider-Man").
type Character string

const (
	// Vanguards
	CaptainAmerica Character = "Captain America"
	DoctorStrange  Character = "Doctor Strange"
	Groot          Character = "Groot"
	Hulk           Character = "Hulk"
	Magneto        Character = "Magneto"
	PeniParker     Character = "Peni Parker"
	TheThing       Character = "The Thing"
	Thor           Character = "Thor"
	Venom          Character = "Venom"

	// Duelists
	Angela          Character = "Angela"
	Blade           Character = "Blade"
	BlackPanther    Character = "Black Panther"
	BlackWidow      Character = "Black Widow"
	Daredevil       Character = "Daredevil"
	EmmaFrost       Character = "Emma Frost"
	Gambit          Character = "Gambit"
	Hawkeye         Character = "Hawkeye"
	Hela            Character = "Hela"
	HumanTorch      Character = "Human Torch"
	IronFist        Character = "Iron Fist"
	Magik           Character = "Magik"
	MisterFantastic Character = "Mister Fantastic"
	MoonKnight      Character = "Moon Knight"
	Namor           Character = "Namor"
	Phoenix         Character = "Phoenix"
	Psylocke        Character = "Psylocke"
	ScarletWitch    Character = "Scarlet Witch"
	SpiderMan       Character = "Spider-Man"
	SquirrelGirl    Character = "Squirrel Girl"
	StarLord        Character = "Star-Lord"
	Storm           Character = "Storm"
	ThePunisher     Character = "The Punisher"
	Ultron          Character = "Ultron"
	WinterSoldier   Character = "Winter Soldier"
	Wolverine       Character = "Wolverine"

	// Strategists
	AdamWarlock      Character = "Adam Warlock"
	CloakAndDagger   Character = "Cloak and Dagger"
	InvisibleWoman   Character = "Invisible Woman"
	IronMan          Character = "Iron Man"
	JeffTheLandShark Character = "Jeff the Land Shark"
	Loki             Character = "Loki"
	LunaSnow         Character = "Luna Snow"
	Mantis           Character = "Mantis"
	RocketRaccoon    Character = "Rocket Raccoon"
)

// AllCharacters is the fixed roster, in keyword-match order. A file whose
// name matches two characters' keyword lists resolves to whichever comes
// first here, so the order must not change.
var AllCharacters = []Character{
	// Vanguards
	CaptainAmerica, DoctorStrange, Groot, Hulk, Magneto, PeniParker, TheThing,
	Thor, Venom,
	// Duelists
	Angela, Blade, BlackPanther, BlackWidow, Daredevil, EmmaFrost, Gambit,
	Hawkeye, Hela, HumanTorch, IronFist, Magik, MisterFantastic, MoonKnight,
	Namor, Phoenix, Psylocke, ScarletWitch, SpiderMan, SquirrelGirl, StarLord,
	Storm, ThePunisher, Ultron, WinterSoldier, Wolverine,
	// Strategists
	AdamWarlock, CloakAndDagger, InvisibleWoman, IronMan, JeffTheLandShark,
	Loki, LunaSnow, Mantis, RocketRaccoon,
}

// characterKeywords maps each character to the lowercase tokens that imply it
// in filenames and path segments.
var characterKeywords = map[Character][]string{
	CaptainAmerica:   {"captainamerica", "captain", "rogers", "steve"},
	DoctorStrange:    {"doctorstrange", "strange", "stephen"},
	Groot:            {"groot"},
	Hulk:             {"hulk", "banner", "bruce"},
	Magneto:          {"magneto", "erik", "max"},
	PeniParker:       {"peni", "parker", "peniparker"},
	TheThing:         {"thing", "ben", "grimm"},
	Thor:             {"thor", "odinson"},
	Venom:            {"venom", "symbiote", "eddie"},
	Angela:           {"angela"},
	Blade:            {"blade", "eric", "brooks"},
	BlackPanther:     {"blackpanther", "panther", "tchalla"},
	BlackWidow:       {"blackwidow", "widow", "natasha", "romanoff"},
	Daredevil:        {"daredevil", "matt", "murdock"},
	EmmaFrost:        {"emma", "frost", "emmafrost", "white", "queen"},
	Gambit:           {"gambit", "remy", "lebeau"},
	Hawkeye:          {"hawkeye", "clint", "barton"},
	Hela:             {"hela"},
	HumanTorch:       {"human", "torch", "humantorch", "johnny", "storm"},
	IronFist:         {"ironfist", "danny", "rand"},
	Magik:            {"magik", "illyana"},
	MisterFantastic:  {"mister", "fantastic", "misterfantastic", "reed", "richards"},
	MoonKnight:       {"moonknight", "marc", "spector"},
	Namor:            {"namor", "submariner"},
	Phoenix:          {"phoenix", "jean", "grey"},
	Psylocke:         {"psylocke", "betsy"},
	ScarletWitch:     {"scarletwitch", "wanda", "maximoff"},
	SpiderMan:        {"spiderman", "spider", "peter", "parker"},
	SquirrelGirl:     {"squirrelgirl", "doreen"},
	StarLord:         {"starlord", "star", "lord", "quill", "peter"},
	Storm:            {"storm", "ororo"},
	ThePunisher:      {"punisher", "frank", "castle"},
	Ultron:           {"ultron"},
	WinterSoldier:    {"wintersoldier", "winter", "bucky", "barnes"},
	Wolverine:        {"wolverine", "logan", "james", "howlett"},
	AdamWarlock:      {"adamwarlock", "adam", "warlock"},
	CloakAndDagger:   {"cloak", "dagger", "cloakanddagger", "tyrone", "tandy"},
	InvisibleWoman:   {"invisiblewoman", "invisible", "sue", "storm"},
	IronMan:          {"ironman", "tony", "stark"},
	JeffTheLandShark: {"jeff", "landshark", "shark"},
	Loki:             {"loki", "laufeyson"},
	LunaSnow:         {"lunasnow", "luna", "snow"},
	Mantis:           {"mantis"},
	RocketRaccoon:    {"rocketraccoon", "rocket", "raccoon"},
}

// Keywords returns the lowercase keywords associated with the character.
func (c Character) Keywords() []string {
	return characterKeywords[c]
}

// Valid reports whether c is part of the roster.
func (c Character) Valid() bool {
	_, ok := characterKeywords[c]
	return ok
}

// ModMetadata is the persisted, user-editable sidecar for a mod, stored as
// pretty JSON keyed by the mod identifier. Field names match the sidecar
// files written by earlier versions of the app.
type ModMetadata struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Author      *string    `json:"author"`
	Version     *string    `json:"version"`
	Tags        []string   `json:"tags"`
	Category    Category   `json:"category"`
	Character   *Character `json:"character"`
	Costume     *string    `json:"costume"` // costume ID, e.g. "symbiote", "2099"
	IsFavorite  bool       `json:"isFavorite"`
	IsNSFW      bool       `json:"isNsfw"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	InstallDate time.Time  `json:"installDate"`
	ProfileIDs  []string   `json:"profileIds"`

	// NexusMods integration
	NexusModID   *int    `json:"nexusModId"`
	NexusFileID  *int    `json:"nexusFileId"`
	NexusVersion *string `json:"nexusVersion"`
}

// ModRecord is the fully assembled view of one mod, rebuilt on every scan.
// It is never persisted: it is a pure function of on-disk state plus the
// metadata store.
type ModRecord struct {
	ID               string
	Name             string
	Category         Category
	Character        *Character
	Enabled          bool
	IsFavorite       bool
	FilePath         string
	ThumbnailPath    string // empty when no thumbnail was found
	Metadata         ModMetadata
	FileSize         int64
	InstallDate      time.Time
	LastModified     time.Time
	OriginalFileName string // on-disk file name with the disabled marker stripped

	// AssociatedFiles always has the primary file first, followed by any
	// companion files sharing its base name.
	AssociatedFiles []string
}
