package main_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"tycho/colors"
	"tycho/database"
	"tycho/driver"
	"tycho/feedback"
	"tycho/syntax"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestFiles(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	testDir := filepath.Join(cwd, "tests")

	entries, err := os.ReadDir(testDir)
	if err != nil {
		panic(err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tycho" {
			continue
		}

		t.Run(entry.Name(), func(t *testing.T) {
			path := filepath.Join(testDir, entry.Name())
			source, err := os.ReadFile(path)
			if err != nil {
				panic(err)
			}

			var buf bytes.Buffer
			colors.WithoutColor(func() {
				db := database.NewDb()

				file, syntaxError := syntax.Parse(db, entry.Name(), string(source))
				if syntaxError != nil {
					panic(syntaxError)
				}

				items := driver.Check(db, file, driver.Options{})

				for _, statement := range file.Statements {
					if fact, ok := database.GetFact[driver.TypeFact](statement); ok {
						buf.WriteString(database.RenderNode(statement) + " " + fact.String() + "\n")
					}
				}

				feedback.Write(&buf, items)
			})

			snaps.WithConfig(snaps.Dir(filepath.Join(testDir, "__snapshots__")), snaps.Filename(entry.Name())).MatchStandaloneSnapshot(t, buf.String())
		})
	}
}
