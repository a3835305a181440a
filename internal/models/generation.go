package models

// Source kinds accepted by the generation endpoints.
const (
	SourceFile = "file"
	SourceURL  = "url"
	SourceText = "text"
)

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type InfographicStat struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type InfographicRecord struct {
	Title     string            `json:"title"`
	Summary   string            `json:"summary"`
	KeyPoints []string          `json:"keyPoints"`
	Stats     []InfographicStat `json:"stats"`
}

type GenerateFlashcardsRequest struct {
	Content        string `json:"content"`
	FileName       string `json:"fileName"`
	SourceType     string `json:"sourceType"`
	PromptTemplate string `json:"promptTemplate"`
}

type FlashcardResult struct {
	Success    bool        `json:"success"`
	Title      string      `json:"title"`
	Flashcards []Flashcard `json:"flashcards"`
}

type GenerateInfographicRequest struct {
	Content        string `json:"content"`
	FileName       string `json:"fileName"`
	SourceType     string `json:"sourceType"`
	PromptTemplate string `json:"promptTemplate"`
}

type InfographicResult struct {
	Success         bool              `json:"success"`
	Title           string            `json:"title"`
	InfographicData InfographicRecord `json:"infographicData"`
}

type ConvertRequest struct {
	FileContent    string `json:"fileContent"`
	FileName       string `json:"fileName"`
	ConversionType string `json:"conversionType"`
}

type ConversionResult struct {
	Success     bool   `json:"success"`
	FileName    string `json:"fileName"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	Message     string `json:"message"`
}
