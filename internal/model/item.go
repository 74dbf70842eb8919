package model

// Todo is the domain model for a todo entry.
// ID is stable for the life of the record; display positions are not.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Counts summarizes a list.
type Counts struct {
	Total     int
	Completed int
	Pending   int
}

// Match is a search hit with its 1-based position in the full list.
type Match struct {
	Position int
	Todo     Todo
}
