package server

// GeneticRequest is the body of POST /api/GA. MaxTime is in seconds.
type GeneticRequest struct {
	H              *int     `json:"h" binding:"required,gte=0"`
	K              *int     `json:"k" binding:"required,gte=0"`
	FileContent    string   `json:"fileContent" binding:"required"`
	MaxLabel       int      `json:"maxLabel" binding:"required,gte=1"`
	Islands        int      `json:"populationsCount" binding:"required,gte=1"`
	IslandSize     int      `json:"populationSize" binding:"required,gte=1"`
	MutationChance *float64 `json:"mutationChance" binding:"required,gte=0,lte=1"`
	Elites         *int     `json:"elitesCount" binding:"required,gte=0"`
	MaxGenerations int      `json:"maxGenerations" binding:"required,gte=1"`
	MaxTime        int      `json:"maxTime" binding:"required,gte=1"`
	Seed           *uint64  `json:"seed"`
	WarmStart      int      `json:"warmStart" binding:"gte=0"`
}

// AnnealingRequest is the body of POST /api/SA. Without MaxLabel the file
// is read in the plain format and the density variant runs.
type AnnealingRequest struct {
	H             *int    `json:"h" binding:"required,gte=0"`
	K             *int    `json:"k" binding:"required,gte=0"`
	FileContent   string  `json:"fileContent" binding:"required"`
	MaxLabel      int     `json:"maxLabel" binding:"gte=0"`
	Temperature   float64 `json:"temperature" binding:"required,gt=0"`
	CoolingFactor float64 `json:"coolingFactor" binding:"required,gt=0,lt=1"`
	MaxIterations int     `json:"maxIterations" binding:"required,gte=1"`
	MaxTime       int     `json:"maxTime" binding:"required,gte=1"`
	Seed          *uint64 `json:"seed"`
	CoolingFloor  string  `json:"coolingFloor" binding:"omitempty,oneof=Zero Epsilon"`
	Restarts      int     `json:"restarts" binding:"gte=0"`
}

// Response carries a finished run. ErrorMsg is null on success.
type Response struct {
	Time                float64   `json:"time"`
	Iterations          int       `json:"iterations"`
	Temperature         *float64  `json:"temperature,omitempty"`
	Solution            string    `json:"solution"`
	IsCorrect           bool      `json:"isCorrect"`
	ConflictingVertexes int       `json:"conflictingVertexes"`
	ChromaticNumber     int       `json:"chromaticNumber"`
	Fitness             float64   `json:"fitness"`
	History             []float64 `json:"history,omitempty"`
	Warnings            []string  `json:"warnings,omitempty"`
	ErrorMsg            *string   `json:"errorMsg"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	ErrorMsg string `json:"errorMsg"`
	Code     string `json:"code"`
}

// Error codes.
const (
	CodeInvalidConfig = "INVALID_CONFIG"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeCanceled      = "CANCELED"
	CodeInternal      = "INTERNAL"
)
