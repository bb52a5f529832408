package models

// Row maps a column name to a scalar value: string, json.Number (or any
// Go number), bool or nil.
type Row map[string]any

// ExecuteRequest is the body of POST /execute.
type ExecuteRequest struct {
	Query string `json:"query"`
}

// ExecutionResponse is the wire shape returned by POST /execute.
//
// It is the union of the multi-statement fields and the legacy
// single-statement fields. Use Classify to turn it into an
// ExecutionResult before rendering.
type ExecutionResponse struct {
	MultiStatement     bool              `json:"multiStatement"`
	TotalStatements    int               `json:"totalStatements"`
	ExecutedStatements int               `json:"executedStatements"`
	Stopped            bool              `json:"stopped"`
	Results            []StatementResult `json:"results"`

	Success  bool     `json:"success"`
	Data     []Row    `json:"data"`
	Columns  []string `json:"columns,omitempty"`
	RowCount *int     `json:"rowCount,omitempty"`
	Message  string   `json:"message,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// StatementResult is the outcome of one statement in a batch.
//
// A nil Data means the statement returned no result set; an empty,
// non-nil Data means a result set with zero rows.
type StatementResult struct {
	StatementNumber int      `json:"statementNumber"`
	Statement       string   `json:"statement"`
	Success         bool     `json:"success"`
	Data            []Row    `json:"data"`
	Columns         []string `json:"columns,omitempty"`
	RowCount        *int     `json:"rowCount,omitempty"`
	Message         string   `json:"message,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// ExecutionResult is a classified execution response.
//
// The variants are BatchResult, LegacyResult and FailureResult.
type ExecutionResult interface {
	isExecutionResult()
}

// BatchResult is a multi-statement response.
type BatchResult struct {
	MultiStatement     bool
	TotalStatements    int
	ExecutedStatements int
	Stopped            bool
	Results            []StatementResult
}

// LegacyResult is the older single-statement response shape.
type LegacyResult struct {
	Data     []Row
	Columns  []string
	RowCount *int
	Message  string
}

// FailureResult is a request rejected as a whole, either in-band with
// success = false or with a non-2xx status.
type FailureResult struct {
	Status  int
	Message string
}

func (BatchResult) isExecutionResult()   {}
func (LegacyResult) isExecutionResult()  {}
func (FailureResult) isExecutionResult() {}

// DefaultExecutionError is shown when a non-2xx response carries no error text.
const DefaultExecutionError = "An error occurred while executing the query."

// Classify discriminates an execution response received with the given
// HTTP status code.
func Classify(status int, resp ExecutionResponse) ExecutionResult {
	if status < 200 || status > 299 {
		message := resp.Error
		if message == "" {
			message = DefaultExecutionError
		}

		return FailureResult{Status: status, Message: message}
	}

	if resp.MultiStatement || resp.Results != nil {
		return BatchResult{
			MultiStatement:     resp.MultiStatement,
			TotalStatements:    resp.TotalStatements,
			ExecutedStatements: resp.ExecutedStatements,
			Stopped:            resp.Stopped,
			Results:            resp.Results,
		}
	}

	if !resp.Success {
		return FailureResult{Status: status, Message: resp.Error}
	}

	return LegacyResult{
		Data:     resp.Data,
		Columns:  resp.Columns,
		RowCount: resp.RowCount,
		Message:  resp.Message,
	}
}

// RowCountOf returns rowCount when the backend reported one, and the
// number of rows otherwise.
func RowCountOf(rowCount *int, data []Row) int {
	if rowCount != nil {
		return *rowCount
	}

	return len(data)
}
