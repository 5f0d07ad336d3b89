package models

// Todo is an open task. Description is nullable in the store, so an absent
// description round-trips as JSON null.
type Todo struct {
	ID          int64   `json:"todo_id"`
	Description *string `json:"description"`
}

// CompletedTodo is a todo that was moved out of the todo table on completion.
type CompletedTodo struct {
	ID          int64   `json:"comp_id"`
	Description *string `json:"description"`
}
