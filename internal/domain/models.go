package domain

// Record is a single search hit
type Record struct {
	ObjectID string `json:"objectID"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

// ResultSet is the decoded payload of one search request
type ResultSet struct {
	Hits []Record `json:"hits"`

	// Response metadata reported by the search API. Informational only,
	// pagination is always computed locally from Hits.
	NbHits      int    `json:"nbHits,omitempty"`
	Page        int    `json:"page,omitempty"`
	NbPages     int    `json:"nbPages,omitempty"`
	HitsPerPage int    `json:"hitsPerPage,omitempty"`
	Query       string `json:"query,omitempty"`
}

// EmptyResultSet returns the initial data shown before any search resolves
func EmptyResultSet() ResultSet {
	return ResultSet{Hits: []Record{}}
}

// DisplayTitle returns the title, falling back to the object ID for untitled hits
func (r Record) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return "(untitled " + r.ObjectID + ")"
}
