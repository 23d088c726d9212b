package cfg

type Cfg struct {
	// Artifact locations
	DataDir      string
	CompaniesDir string
	DigestFile   string
	ArchiveDB    string

	// Collection behavior
	SocialToken  string
	FetchTimeout int // seconds
	RequestDelay int // milliseconds between outbound requests
	MaxItems     int // per-source item cap
	SocialItems  int // per-handle post cap

	// Serve mode
	Serve bool
	Port  string

	// Modes
	Reindex bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
