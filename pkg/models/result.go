package models

import "time"

// Exam identifies the exam round this service answers for.
const Exam = "tds-2025-05-roe"

// Columns holds the inferred column indexes into Table.Headers. Date is -1
// when the table has no date-like column.
type Columns struct {
	Amount   int `json:"amount"`
	Category int `json:"category"`
	Date     int `json:"date"`
}

// HasDate reports whether a date column was inferred.
func (c Columns) HasDate() bool {
	return c.Date >= 0
}

// CleanedRow is one data row after normalization. HasDate is false when the
// table has no date column or the raw value did not parse as a date.
type CleanedRow struct {
	Amount   float64
	Category string
	Date     time.Time
	HasDate  bool
}

// Summary is the outcome of analyzing one table: the columns that were
// chosen, every cleaned row, and the rounded food-spend total.
type Summary struct {
	Columns  Columns
	RowCount int
	Matched  int
	Rows     []CleanedRow
	Total    float64
}

// Result is the response envelope of the analyze endpoint.
type Result struct {
	Answer float64 `json:"answer"`
	Email  string  `json:"email"`
	Exam   string  `json:"exam"`
}

// NewResult stamps a computed total with the contact email and exam id.
func NewResult(answer float64, email string) Result {
	return Result{Answer: answer, Email: email, Exam: Exam}
}
