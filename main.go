package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"tycho/colors"
	"tycho/database"
	"tycho/driver"
	"tycho/feedback"
	"tycho/syntax"

	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type Context struct{}

type CheckCmd struct {
	Facts       bool
	Budget      int      `default:"0" help:"Limit the number of solver steps per statement."`
	FilterLines []string `short:"l"`
	Verbose     int      `short:"v" type:"counter"`
	Paths       []string `arg:"" name:"path" type:"path"`
}

func (cmd *CheckCmd) Run(ctx *Context) error {
	if cmd.Verbose > 0 {
		commonlog.Configure(cmd.Verbose, nil)
	}

	output, count, err := check(cmd)
	fmt.Print(output)
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("checking failed with %d feedback item(s)", count)
	}

	return nil
}

var cli struct {
	Check CheckCmd `cmd:"" default:"withargs"`
}

func main() {
	ctx := kong.Parse(&cli)
	err := ctx.Run(&Context{})
	ctx.FatalIfErrorf(err)
}

func check(cmd *CheckCmd) (string, int, error) {
	db := database.NewDb()

	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	var files []*syntax.File
	var items []feedback.Item
	for _, path := range cmd.Paths {
		path, err := filepath.Rel(cwd, path)
		if err != nil {
			return "", 0, err
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return "", 0, err
		}

		file, syntaxError := syntax.Parse(db, path, string(source))
		if syntaxError != nil {
			return "", 0, fmt.Errorf("syntax error: %v", syntaxError)
		}

		files = append(files, file)
		items = append(items, driver.Check(db, file, driver.Options{Budget: cmd.Budget})...)
	}

	var filters []database.FilterFunc
	for _, entry := range cmd.FilterLines {
		entry = strings.Trim(entry, " =")

		split := strings.SplitN(entry, ":", 2)
		if len(split) == 2 {
			line, err := strconv.Atoi(split[1])
			if err != nil {
				continue
			}

			filters = append(filters, database.LineFilter(split[0], line))
		} else if line, err := strconv.Atoi(split[0]); err == nil {
			path, err := filepath.Rel(cwd, cmd.Paths[len(cmd.Paths)-1])
			if err != nil {
				return "", 0, err
			}

			filters = append(filters, database.LineFilter(path, line))
		} else {
			// A bare name restricts the dump to one file.
			filters = append(filters, database.PathFilter(split[0]))
		}
	}

	filter := func(node database.Node) bool {
		return len(filters) == 0 || slices.ContainsFunc(filters, func(f database.FilterFunc) bool {
			return f(node)
		})
	}

	var output strings.Builder

	if cmd.Facts {
		fmt.Fprintln(&output, colors.Title("Facts:"))
		db.Write(&output, filter)
	}

	for _, file := range files {
		writeTypes(&output, file)
	}

	count := feedback.Write(&output, items)

	return output.String(), count, nil
}

func writeTypes(w io.Writer, file *syntax.File) {
	for _, statement := range file.Statements {
		fact, ok := database.GetFact[driver.TypeFact](statement)
		if !ok {
			continue
		}

		fmt.Fprintf(w, "%s %s\n", database.RenderNode(statement), fact)
	}
}
