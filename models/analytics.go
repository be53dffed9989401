package models

// TagCount is a tag together with its occurrence count across all papers
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Analytics holds the aggregate statistics for a paper collection
type Analytics struct {
	TotalPapers    int        `json:"total_papers"`
	PapersThisYear int        `json:"papers_this_year"`
	TopTags        []TagCount `json:"top_tags"`
}
