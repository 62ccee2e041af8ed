package services

// GenerationConfig holds how much the runner asks the model for per note
type GenerationConfig struct {
	FlashcardsPerNote int
	QuestionsPerQuiz  int
}
