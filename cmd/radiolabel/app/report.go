package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/borsosbarna/graph-labeling/pkg/api/v1alpha1"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling"
)

// historySamples is the number of history points printed for a GA run.
const historySamples = 100

// Report is the printable summary of a run.
type Report struct {
	Engine              v1alpha1.Engine `json:"engine"`
	Seed                uint64          `json:"seed"`
	Time                float64         `json:"time"`
	Iterations          int             `json:"iterations"`
	Temperature         *float64        `json:"temperature,omitempty"`
	Solution            []int           `json:"solution"`
	IsCorrect           bool            `json:"isCorrect"`
	ConflictingVertexes int             `json:"conflictingVertexes"`
	ChromaticNumber     int             `json:"chromaticNumber"`
	Fitness             float64         `json:"fitness"`
	History             []float64       `json:"history,omitempty"`
	StopReason          string          `json:"stopReason"`
	Warnings            []string        `json:"warnings,omitempty"`
}

// NewReport summarizes r.
func NewReport(r *labeling.Result, seed uint64) *Report {
	rep := &Report{
		Engine:              r.Engine,
		Seed:                seed,
		Time:                r.Elapsed.Seconds(),
		Iterations:          r.Steps,
		Solution:            r.Best.Labels,
		IsCorrect:           r.Best.Correct,
		ConflictingVertexes: r.Best.ConflictCount,
		ChromaticNumber:     r.Best.ChromaticNumber,
		Fitness:             r.Best.Fitness,
		StopReason:          string(r.StopReason),
	}
	switch r.Engine {
	case v1alpha1.EngineGenetic:
		rep.History = r.SampledHistory(historySamples)
	case v1alpha1.EngineAnnealing:
		t := r.Temperature
		rep.Temperature = &t
	}
	if r.Warning != nil {
		rep.Warnings = []string{r.Warning.Error()}
	}
	return rep
}

// WriteReport writes rep as text or JSON.
func WriteReport(w io.Writer, rep *Report, output string) error {
	switch output {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case OutputText, "":
		return rep.writeText(w)
	}
	return fmt.Errorf("unknown output %q", output)
}

// writeText prints one value per line: time, iterations, temperature (SA),
// labels, correctness as 1/0, conflicts, chromatic number, fitness and the
// history (GA).
func (r *Report) writeText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, formatFloat(r.Time))
	fmt.Fprintln(bw, r.Iterations)
	if r.Temperature != nil {
		fmt.Fprintln(bw, formatFloat(*r.Temperature))
	}
	fmt.Fprintln(bw, joinInts(r.Solution))
	correct := 0
	if r.IsCorrect {
		correct = 1
	}
	fmt.Fprintln(bw, correct)
	fmt.Fprintln(bw, r.ConflictingVertexes)
	fmt.Fprintln(bw, r.ChromaticNumber)
	fmt.Fprintln(bw, formatFloat(r.Fitness))
	if r.Engine == v1alpha1.EngineGenetic {
		values := make([]string, len(r.History))
		for i, v := range r.History {
			values[i] = formatFloat(v)
		}
		fmt.Fprintln(bw, strings.Join(values, " "))
	}
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
