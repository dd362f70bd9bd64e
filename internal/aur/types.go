package aur

// PackageMetadata holds the facts the AUR RPC returns for one package.
// Optional fields are pointers so that a missing value survives round-trips
// distinct from an empty one.
type PackageMetadata struct {
	ID             int64    `json:"ID"`
	Name           string   `json:"Name"`
	PackageBaseID  int64    `json:"PackageBaseID"`
	PackageBase    string   `json:"PackageBase"`
	Version        string   `json:"Version"`
	Description    *string  `json:"Description"`
	URL            *string  `json:"URL"`
	URLPath        *string  `json:"URLPath"`
	NumVotes       int      `json:"NumVotes"`
	Popularity     float64  `json:"Popularity"`
	FirstSubmitted int64    `json:"FirstSubmitted"`
	LastModified   int64    `json:"LastModified"`
	OutOfDate      *int64   `json:"OutOfDate"`
	Maintainer     *string  `json:"Maintainer"`
	Submitter      string   `json:"Submitter"`
	License        []string `json:"License"`
	Depends        []string `json:"Depends"`
	MakeDepends    []string `json:"MakeDepends"`
	OptDepends     []string `json:"OptDepends"`
	CheckDepends   []string `json:"CheckDepends"`
	Provides       []string `json:"Provides"`
	Conflicts      []string `json:"Conflicts"`
	Replaces       []string `json:"Replaces"`
	Groups         []string `json:"Groups"`
	Keywords       []string `json:"Keywords"`
	CoMaintainers  []string `json:"CoMaintainers"`
}

// Comment is one user comment scraped from a package page. Identity is ID;
// the source does not guarantee uniqueness across pages.
type Comment struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Date     string `json:"date"`
	Content  string `json:"content"`
	FromPage int    `json:"fromPage"`
	Pinned   bool   `json:"pinned"`
}

// Evidence bundles everything the generation stages see about a package.
// Built once per analysis and passed by value through the pipeline.
type Evidence struct {
	Build    string          `json:"build"`
	Metadata PackageMetadata `json:"metadata"`
	Comments []Comment       `json:"comments"`
}
