package sstable

import (
	"bufio"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
)

// serialize one word per line, words must not contain line breaks
func WordsSerialize(words []string, fn string) (re error) {
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
	for _, word := range words {
		fmt.Fprintln(w, word)
	}
	return w.Flush()
}

// deserialize the words written by WordsSerialize
func WordsDeserialize(fn string) ([]string, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
