package diagnostics

import (
	"errors"
	"fmt"
	"os"
)

var (
	COMPILER_ERROR_FOUND = errors.New("compiler error found")
)

type Diag struct {
	Message string
}

type Collector struct {
	Diags []Diag
}

func New() *Collector {
	return &Collector{
		Diags: nil,
	}
}

func (collector *Collector) ReportAndSave(diag Diag) {
	fmt.Fprintln(os.Stderr, diag.Message)
	collector.Diags = append(collector.Diags, diag)
}
