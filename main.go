package main

import (
	"flag"
	"fmt"

	log "github.com/golang/glog"

	"github.com/necromuralist/neurotic/config"
	"github.com/necromuralist/neurotic/corpus"
	"github.com/necromuralist/neurotic/model"
	"github.com/necromuralist/neurotic/vocab"
)

var (
	configFile = flag.String("config", "", "yaml configuration file")
	envFile    = flag.String("env_file", "", "dotenv file with the corpus paths")
	tagger     = flag.String("model", "", "model type, hmm or baseline")
	alpha      = flag.Float64("alpha", 0, "smoothing constant")
	minCount   = flag.Int("min_count", 0, "minimum count of a vocabulary word when no vocabulary file is given")
	save       = flag.String("save", "", "prefix of the files the trained model is saved to")
	load       = flag.String("load", "", "prefix of the files a trained model is loaded from")
)

// flags given on the command line override the config file
func overrides(c *config.Config) error {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "env_file":
			c.EnvFile = *envFile
		case "model":
			c.Model = *tagger
		case "alpha":
			c.Alpha = *alpha
		case "min_count":
			c.MinCount = *minCount
		}
	})
	return c.Validate()
}

func vocabulary(c *config.Config, paths *config.Paths, tagged []corpus.TaggedWord) (*vocab.Vocabulary, error) {
	if paths.Vocabulary == "" {
		v := vocab.FromCorpus(tagged, c.MinCount)
		log.Infof("built vocabulary of %d words from the corpus", v.Len())
		return v, nil
	}
	words, err := corpus.LoadWords(paths.Vocabulary)
	if err != nil {
		return nil, err
	}
	return vocab.New(words), nil
}

func run() error {
	c, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if err := overrides(c); err != nil {
		return err
	}
	if err := c.LoadEnv(); err != nil {
		return err
	}

	required := []string{c.Env.TestWords}
	if *load == "" {
		required = append(required, c.Env.Training)
	}
	paths, err := c.Paths(required...)
	if err != nil {
		return err
	}

	ctor, err := model.GetModel(c.Model)
	if err != nil {
		return err
	}

	// init model
	var m model.Model
	if *load != "" {
		if m, err = ctor(vocab.Build(nil), c.Alpha); err != nil {
			return err
		}
		if err := m.Load(*load); err != nil {
			return err
		}
	} else {
		tagged, err := corpus.Load(paths.Training)
		if err != nil {
			return err
		}
		v, err := vocabulary(c, paths, tagged)
		if err != nil {
			return err
		}
		if m, err = ctor(v, c.Alpha); err != nil {
			return err
		}
		if err := m.Train(tagged); err != nil {
			return err
		}
	}

	if *save != "" {
		if err := m.Save(*save); err != nil {
			return err
		}
		log.Infof("saved model to %s", *save)
	}

	// tag the test words, one tag per line
	words, err := corpus.LoadWords(paths.TestWords)
	if err != nil {
		return err
	}
	tags, err := m.Tag(words)
	if err != nil {
		return err
	}
	for i, tag := range tags {
		fmt.Printf("%s\t%s\n", words[i], tag)
	}

	if paths.TestTagged == "" {
		return nil
	}
	gold, err := corpus.Load(paths.TestTagged)
	if err != nil {
		return err
	}
	accuracy, err := model.Accuracy(tags, gold)
	if err != nil {
		return err
	}
	log.Infof("accuracy of %s tagger: %.4f", c.Model, accuracy)
	return nil
}

func main() {
	flag.Parse()
	defer log.Flush()

	if err := run(); err != nil {
		log.Exitf("%v", err)
	}
}
