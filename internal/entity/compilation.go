package entity

// Compilation — подборка событий, закрепляемая на главной странице
type Compilation struct {
	ID     int64  `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Pinned bool   `json:"pinned" db:"pinned"`
}

// CompilationWithEvents — подборка вместе с декорированными событиями
type CompilationWithEvents struct {
	Compilation
	Events []*EventWithDetails `json:"events"`
}
