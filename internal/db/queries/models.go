package queries

type Category struct {
	ID   int32
	Type string
}

type Question struct {
	ID         int32
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}
