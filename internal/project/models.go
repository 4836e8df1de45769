package project

// Project is a portfolio entry shown on the marketing site. Insertion order
// in the document is the display order.
type Project struct {
	ID          string   `json:"id" bson:"id"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	URL         string   `json:"url" bson:"url"`
	Tags        []string `json:"tags" bson:"tags"`
}

// Input carries the fields accepted when creating a project.
type Input struct {
	Title       string   `json:"title" form:"title"`
	Description string   `json:"description" form:"description"`
	URL         string   `json:"url" form:"url"`
	Tags        []string `json:"tags" form:"tags"`
}

// Patch is a partial update. A nil field was absent from the request and
// leaves the stored value alone; a non-nil field overwrites it, even when
// empty.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	URL         *string   `json:"url,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// Apply merges p over a copy of cur and returns the result. The id is
// never touched.
func (p Patch) Apply(cur Project) Project {
	out := cur.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.URL != nil {
		out.URL = *p.URL
	}
	if p.Tags != nil {
		out.Tags = append([]string{}, (*p.Tags)...)
	}
	return out
}

// Clone returns a deep copy; Tags is never nil in the result.
func (p Project) Clone() Project {
	out := p
	out.Tags = append([]string{}, p.Tags...)
	return out
}
