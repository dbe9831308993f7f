package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/simonhull/firebird-suite/flugzeug/internal/generator"
	"github.com/simonhull/firebird-suite/flugzeug/internal/materialize"
	"github.com/simonhull/firebird-suite/flugzeug/internal/naming"
	"github.com/simonhull/firebird-suite/flugzeug/internal/prompt"
)

// Answers are the values a project is generated from.
type Answers = materialize.Answers

// Prompt defaults.
const (
	DefaultAuthor = "Me <me@example.com>"
	DefaultDBName = "flugzeug-project"
)

// Question keys.
const (
	KeyName       = "name"
	KeyAuthor     = "author"
	KeyDBName     = "dbname"
	KeyWebsockets = "websockets"
)

var (
	// ErrEmptyName rejects names with no letters or digits.
	ErrEmptyName = errors.New("project name must contain at least one letter or digit")

	// ErrInvalidDBName rejects database names that cannot be written to .env.
	ErrInvalidDBName = errors.New("invalid database name")
)

// QuestionsFor returns the questions asked when generating into dir. The
// suggested name is the kebab-cased base name of dir.
func QuestionsFor(dir string) []prompt.Question {
	return []prompt.Question{
		{
			Key:      KeyName,
			Message:  "Your project name",
			Default:  DefaultName(dir),
			Filter:   naming.Kebab,
			Validate: validateName,
		},
		{
			Key:     KeyAuthor,
			Message: "Author:",
			Default: DefaultAuthor,
			Store:   true,
		},
		{
			Key:      KeyDBName,
			Message:  "MySQL Database name:",
			Default:  DefaultDBName,
			Validate: validateDBName,
		},
		{
			Key:     KeyWebsockets,
			Message: "Use websockets?",
			Kind:    prompt.Confirm,
		},
	}
}

// DefaultName derives a project name from the destination directory.
func DefaultName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return naming.Kebab(filepath.Base(dir))
}

// AnswersFrom converts collected prompt results.
func AnswersFrom(r prompt.Result) Answers {
	return Answers{
		Name:       r.String(KeyName),
		Author:     r.String(KeyAuthor),
		DBName:     r.String(KeyDBName),
		Websockets: r.Bool(KeyWebsockets),
	}
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	return nil
}

func validateDBName(name string) error {
	if _, err := generator.EnvValue(name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDBName, err)
	}
	return nil
}
