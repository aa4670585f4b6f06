package sstable

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/gonum/mat"
)

var ErrCorrupted = errors.New("sstable: model corrupted")

// serialize matrix to file, the first line holds the shape and every
// nonzero element follows as "row,column,value"
func Float64Serialize(m mat.Matrix, fn string) (re error) {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			re = multierror.Append(re, err)
		}
	}()

	w := bufio.NewWriter(out)
	r, c := m.Dims()
	// write the matrix shape
	fmt.Fprintf(w, "%d,%d\n", r, c)

	var val float64
	for ridx := 0; ridx < r; ridx += 1 {
		for cidx := 0; cidx < c; cidx += 1 {
			val = m.At(ridx, cidx)
			if val != 0 { // only write out nonzero value
				fmt.Fprintf(w, "%d,%d,%s\n", ridx, cidx,
					strconv.FormatFloat(val, 'g', -1, 64))
			}
		}
	}
	return w.Flush()
}

// deserialize matrix from file
func Float64Deserialize(fn string) (*mat.Dense, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lineIdx := 0
	var tmp *mat.Dense
	var row, col int

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		txt := scanner.Text()
		lineIdx += 1
		if tmp == nil {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("%w: shape not found: %s", ErrCorrupted, txt)
			}
			if row, err = strconv.Atoi(shape[0]); err != nil {
				return nil, err
			}
			if col, err = strconv.Atoi(shape[1]); err != nil {
				return nil, err
			}
			if row <= 0 || col <= 0 {
				return nil, fmt.Errorf("%w: bad shape %dx%d", ErrCorrupted, row, col)
			}
			tmp = mat.NewDense(row, col, nil)
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Warningf("data corrupted, line %d, data %s", lineIdx, txt)
			continue
		}
		ridx, err := strconv.Atoi(value[0])
		if err != nil {
			return nil, err
		}
		cidx, err := strconv.Atoi(value[1])
		if err != nil {
			return nil, err
		}
		if ridx < 0 || ridx >= row || cidx < 0 || cidx >= col {
			return nil, fmt.Errorf("%w: line %d, index %d,%d out of %dx%d",
				ErrCorrupted, lineIdx, ridx, cidx, row, col)
		}
		val, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return nil, err
		}
		tmp.Set(ridx, cidx, val)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if tmp == nil {
		return nil, fmt.Errorf("%w: %s is empty", ErrCorrupted, fn)
	}

	return tmp, nil
}
