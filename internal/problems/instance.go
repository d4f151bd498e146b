// Package problems loads and evaluates instances of three classic
// permutation optimization problems: the quadratic assignment problem (QAP),
// the permutation flowshop scheduling problem (PFSP) and the linear ordering
// problem (LOP). Instances come from whitespace-delimited text files or from
// random generators; solutions are permutation populations from
// internal/permu.
package problems

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind identifies the problem an Instance belongs to.
type Kind int

const (
	QAP Kind = iota
	PFSP
	LOP
)

func (k Kind) String() string {
	switch k {
	case QAP:
		return "qap"
	case PFSP:
		return "pfsp"
	case LOP:
		return "lop"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrParse is returned when an instance file contains a token that is
	// not a valid integer.
	ErrParse = errors.New("parse error")

	// ErrIncorrectInstance is returned when an instance is evaluated by an
	// evaluator for a different problem.
	ErrIncorrectInstance = errors.New("incorrect problem instance")
)

// Instance is one loaded (or generated) problem instance. Solutions must
// have length Size.
type Instance struct {
	kind     Kind
	size     int
	machines int // PFSP only

	distance [][]int // QAP
	flow     [][]int // QAP
	matrix   [][]int // PFSP: machines × jobs, LOP: size × size
}

// Kind returns the problem the instance belongs to.
func (in *Instance) Kind() Kind { return in.kind }

// Size returns the solution length the instance expects.
func (in *Instance) Size() int { return in.size }

// Machines returns the machine count of a PFSP instance and 0 otherwise.
func (in *Instance) Machines() int { return in.machines }

// Maximize reports whether larger fitness is better for this problem.
// LOP is a maximization problem; QAP and PFSP minimize.
func (in *Instance) Maximize() bool { return in.kind == LOP }

// Validate checks the instance's internal shape.
func (in *Instance) Validate() error {
	if in == nil {
		return errors.New("instance is nil")
	}
	if in.size <= 0 {
		return fmt.Errorf("instance size must be > 0 (got %d)", in.size)
	}
	switch in.kind {
	case QAP:
		if err := checkMatrix(in.distance, in.size, in.size); err != nil {
			return fmt.Errorf("distance matrix: %v", err)
		}
		if err := checkMatrix(in.flow, in.size, in.size); err != nil {
			return fmt.Errorf("flow matrix: %v", err)
		}
	case PFSP:
		if in.machines <= 0 {
			return fmt.Errorf("machines must be > 0 (got %d)", in.machines)
		}
		if err := checkMatrix(in.matrix, in.machines, in.size); err != nil {
			return fmt.Errorf("processing-time matrix: %v", err)
		}
	case LOP:
		if err := checkMatrix(in.matrix, in.size, in.size); err != nil {
			return fmt.Errorf("preference matrix: %v", err)
		}
	default:
		return fmt.Errorf("unknown problem kind %d", int(in.kind))
	}
	return nil
}

func checkMatrix(m [][]int, rows, cols int) error {
	if len(m) != rows {
		return fmt.Errorf("want %d rows, got %d", rows, len(m))
	}
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("row %d: want %d values, got %d", i, cols, len(row))
		}
	}
	return nil
}

// KindFromPath derives the problem kind from the instance file extension:
// .dat for QAP, .fsp for PFSP, .lop for LOP.
func KindFromPath(path string) (Kind, error) {
	switch filepath.Ext(path) {
	case ".dat":
		return QAP, nil
	case ".fsp":
		return PFSP, nil
	case ".lop":
		return LOP, nil
	case "":
		return 0, fmt.Errorf("instance extension not found in %q", path)
	default:
		return 0, fmt.Errorf("unknown instance extension %q", filepath.Ext(path))
	}
}

// Load reads an instance file, picking the format by extension.
func Load(path string) (*Instance, error) {
	kind, err := KindFromPath(path)
	if err != nil {
		return nil, err
	}
	switch kind {
	case QAP:
		return LoadQAP(path)
	case PFSP:
		return LoadPFSP(path)
	default:
		return LoadLOP(path)
	}
}

// LoadQAP reads a QAP instance: a size line followed by a size×size distance
// matrix and a size×size flow matrix.
func LoadQAP(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	size, err := readSizeLine(sc)
	if err != nil {
		return nil, err
	}
	distance, err := readMatrix(sc, size, size)
	if err != nil {
		return nil, err
	}
	flow, err := readMatrix(sc, size, size)
	if err != nil {
		return nil, err
	}
	inst := &Instance{kind: QAP, size: size, distance: distance, flow: flow}
	return inst, inst.Validate()
}

// LoadPFSP reads a PFSP instance: one ignored line, a "jobs machines" line,
// one more ignored line, then a machines×jobs processing-time matrix.
func LoadPFSP(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !sc.Scan() {
		return nil, fmt.Errorf("%q: unexpected end of file", path)
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("%q: cannot find size line", path)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) < 2 {
		return nil, fmt.Errorf("%q: size line needs jobs and machines", path)
	}
	jobs, err := parseInt(fields[0])
	if err != nil {
		return nil, err
	}
	machines, err := parseInt(fields[1])
	if err != nil {
		return nil, err
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("%q: unexpected end of file", path)
	}
	matrix, err := readMatrix(sc, machines, jobs)
	if err != nil {
		return nil, err
	}
	inst := &Instance{kind: PFSP, size: jobs, machines: machines, matrix: matrix}
	return inst, inst.Validate()
}

// LoadLOP reads a LOP instance: a size line followed by a size×size matrix.
func LoadLOP(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	size, err := readSizeLine(sc)
	if err != nil {
		return nil, err
	}
	matrix, err := readMatrix(sc, size, size)
	if err != nil {
		return nil, err
	}
	inst := &Instance{kind: LOP, size: size, matrix: matrix}
	return inst, inst.Validate()
}

func readSizeLine(sc *bufio.Scanner) (int, error) {
	if !sc.Scan() {
		return 0, errors.New("unexpected end of file reading size")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) == 0 {
		return 0, errors.New("empty size line")
	}
	return parseInt(fields[0])
}

func readMatrix(sc *bufio.Scanner, rows, cols int) ([][]int, error) {
	matrix := make([][]int, 0, rows)
	for len(matrix) < rows {
		if !sc.Scan() {
			return nil, fmt.Errorf("unexpected end of file at matrix row %d", len(matrix))
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue // blank separator line
		}
		if len(fields) != cols {
			return nil, fmt.Errorf("matrix row %d: want %d values, got %d", len(matrix), cols, len(fields))
		}
		row := make([]int, cols)
		for i, field := range fields {
			v, err := parseInt(field)
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		matrix = append(matrix, row)
	}
	return matrix, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrParse, s)
	}
	return v, nil
}

// RandomQAP generates a QAP instance with distance and flow weights drawn
// uniformly from [minW, maxW]. Panics on a nil rng or invalid bounds.
func RandomQAP(size, minW, maxW int, rng *rand.Rand) *Instance {
	return &Instance{
		kind:     QAP,
		size:     size,
		distance: randomMatrix(size, size, minW, maxW, rng),
		flow:     randomMatrix(size, size, minW, maxW, rng),
	}
}

// RandomPFSP generates a PFSP instance with processing times drawn uniformly
// from [minTime, maxTime]. Panics on a nil rng or invalid bounds.
func RandomPFSP(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	return &Instance{
		kind:     PFSP,
		size:     jobs,
		machines: machines,
		matrix:   randomMatrix(machines, jobs, minTime, maxTime, rng),
	}
}

// RandomLOP generates a LOP instance with preferences drawn uniformly from
// [minW, maxW]. Panics on a nil rng or invalid bounds.
func RandomLOP(size, minW, maxW int, rng *rand.Rand) *Instance {
	return &Instance{
		kind:   LOP,
		size:   size,
		matrix: randomMatrix(size, size, minW, maxW, rng),
	}
}

func randomMatrix(rows, cols, minV, maxV int, rng *rand.Rand) [][]int {
	if rng == nil {
		panic("random source is not initialized (nil)")
	}
	if minV < 0 || maxV < 0 || maxV < minV {
		panic("invalid value bounds")
	}
	span := maxV - minV + 1
	m := make([][]int, rows)
	for i := range m {
		m[i] = make([]int, cols)
		for j := range m[i] {
			m[i][j] = minV
			if span > 1 {
				m[i][j] += rng.Intn(span)
			}
		}
	}
	return m
}
