// Command studentctl runs administrative queries against the student store.
//
// Usage:
//
//	studentctl [-dev] add-admin <username> <password>
//	studentctl [-dev] find-name <name>
//	studentctl [-dev] exam <exam> <minScore>
//	studentctl [-dev] count <name>...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/ukane-philemon/students/internal/admin"
	"github.com/ukane-philemon/students/internal/config"
	"github.com/ukane-philemon/students/internal/db/mongodb"
	"github.com/ukane-philemon/students/internal/jwt"
	"github.com/ukane-philemon/students/internal/student"
)

const timeout = 30 * time.Second

var errUsage = errors.New("usage: studentctl [-dev] add-admin <username> <password> | find-name <name> | exam <exam> <minScore> | count <name>...")

func main() {
	var isDevMode bool
	flag.BoolVar(&isDevMode, "dev", false, "Use the development database")
	flag.Parse()

	if flag.NArg() == 0 {
		color.Red("%v", errUsage)
		os.Exit(2)
	}

	cfg, err := config.Load(isDevMode, false)
	if err != nil {
		color.Red("config.Load error: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	mdb, err := mongodb.New(ctx, cfg.DBName, cfg.DBURL)
	if err != nil {
		color.Red("mongodb.New error: %v", err)
		os.Exit(1)
	}

	jwtManager, err := jwt.NewJWTManager([]byte(cfg.JWTSecret))
	if err != nil {
		shutdown(os.Stderr, mdb)
		color.Red("jwt.NewJWTManager error: %v", err)
		os.Exit(1)
	}

	cli := &cli{
		out:      os.Stdout,
		students: student.NewService(mdb),
		admins:   admin.NewService(mdb, jwtManager),
	}

	err = cli.run(ctx, flag.Args())
	shutdown(os.Stderr, mdb)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdown disconnects the store, reporting any failure to w.
func shutdown(w io.Writer, store shutdowner) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := store.Shutdown(ctx); err != nil {
		color.New(color.FgRed).Fprintf(w, "mdb.Shutdown error: %v\n", err)
	}
}

type cli struct {
	out      io.Writer
	students *student.Service
	admins   *admin.Service
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "add-admin":
		if len(args) != 2 {
			return errUsage
		}
		id, err := c.admins.Create(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(c.out, "Admin %s created successfully (ID: %s)\n", args[0], id)

	case "find-name":
		if len(args) != 1 {
			return errUsage
		}
		views, err := c.students.FindStudentsByName(ctx, args[0])
		if err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintf(c.out, "\nStudents named %q\n", args[0])
		renderStudents(c.out, views)

	case "exam":
		if len(args) != 2 {
			return errUsage
		}
		minScore, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid minScore %q", args[1])
		}
		views, err := c.students.FindStudentsByExamNameMinScore(ctx, args[0], minScore)
		if err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintf(c.out, "\nStudents with %s >= %d\n", args[0], minScore)
		renderStudents(c.out, views)

	case "count":
		if len(args) == 0 {
			return errUsage
		}
		count, err := c.students.CountStudentsByNames(ctx, args)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%d\n", count)

	default:
		return errUsage
	}

	return nil
}

// renderStudents writes views as a table, one row per student with their
// scores ordered by exam name.
func renderStudents(w io.Writer, views []*student.StudentView) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Scores"})

	for _, view := range views {
		table.Append([]string{
			strconv.FormatInt(view.ID, 10),
			view.Name,
			formatScores(view.Scores),
		})
	}

	table.Render()
}

func formatScores(scores map[string]int) string {
	exams := make([]string, 0, len(scores))
	for exam := range scores {
		exams = append(exams, exam)
	}
	sort.Strings(exams)

	var formatted string
	for i, exam := range exams {
		if i > 0 {
			formatted += ", "
		}
		formatted += fmt.Sprintf("%s=%d", exam, scores[exam])
	}
	return formatted
}
