package services

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// fakeProvider returns canned replies instead of calling the model.
type fakeProvider struct {
	reply  string
	err    error
	calls  int
	prompt string // last prompt seen by Generate
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeProvider) StreamAnswer(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	f.calls++
	chunks := make(chan string, 1)
	errs := make(chan error, 1)
	if f.err != nil {
		errs <- f.err
	} else {
		chunks <- f.reply
	}
	close(chunks)
	close(errs)
	return chunks, errs
}

func (f *fakeProvider) Close() error { return nil }

func testLogEntry() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
