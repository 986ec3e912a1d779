package cmd

import (
	"flag"
	"io"

	"github.com/etnz/sharetrack/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// filePredictors completes the flags naming files.
var filePredictors = map[string]complete.Predictor{
	"config":          predict.Files("*.yml"),
	"l":               predict.Files("*.jsonl"),
	"o":               predict.Files("*"),
	"cmc-cash":        predict.Files("*.csv"),
	"cmc-conf":        predict.Files("*.csv"),
	"betashares":      predict.Files("*.csv"),
	"coinspot-orders": predict.Files("*.csv"),
}

// Completion returns the completion tree of the commands, derived from
// their flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{"config": filePredictors["config"]},
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictorOf(f) })
		root.Sub[c.Name()] = sub
	}
	root.Sub["topic"].Args = predict.Set(append(docs.All(), docs.Index))
	return root
}

func predictorOf(f *flag.Flag) complete.Predictor {
	if p, ok := filePredictors[f.Name]; ok {
		return p
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}
