package cache

// Keyer builds cache keys.
type Keyer interface {
	// RankingKey returns the key for a computed ranking.
	RankingKey(opts RankingKeyOpts) string

	// ArtifactKey returns the key for a rendered graph artifact.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// RankingKeyOpts holds every input that affects a ranking.
type RankingKeyOpts struct {
	AirportsHash string   `json:"airports"`
	RoutesHash   string   `json:"routes"`
	Mode         string   `json:"mode"`
	Dedupe       string   `json:"dedupe"`
	Top          int      `json:"top"`
	SkipInvalid  bool     `json:"skip_invalid"`
	Columns      []string `json:"columns"`
}

// ArtifactKeyOpts holds every render input besides the graph itself.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Top       int    `json:"top"`
	Neighbors bool   `json:"neighbors"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with no prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RankingKey returns "ranking:<sha256>".
func (DefaultKeyer) RankingKey(opts RankingKeyOpts) string {
	return hashKey("ranking", opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
