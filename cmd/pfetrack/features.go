package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/domain/model"
	"github.com/spf13/pflag"
)

// featureArgs is the parsed form shared by the feature commands:
// an optional subcommand, its positionals, and --query.
type featureArgs struct {
	Sub   string
	Rest  []string
	Query string
}

func parseFeatureArgs(ctx *commandContext, name, defaultSub string, args []string, extra func(*pflag.FlagSet)) (featureArgs, error) {
	fs := newFlagSet(ctx, name)
	var out featureArgs
	fs.StringVar(&out.Query, "query", "", "JMESPath expression applied to the output")
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return featureArgs{}, err
	}
	out.Sub = defaultSub
	if fs.NArg() > 0 {
		out.Sub = fs.Arg(0)
		out.Rest = fs.Args()[1:]
	}
	return out, nil
}

func parseID(fa featureArgs) (int64, error) {
	if len(fa.Rest) < 1 {
		return 0, usageError("%s needs an ID", fa.Sub)
	}
	id, err := strconv.ParseInt(fa.Rest[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError("invalid ID %q", fa.Rest[0])
	}
	return id, nil
}

// emit prints v unless err is set.
func emit(ctx *commandContext, fa featureArgs, v any, err error) error {
	if err != nil {
		return err
	}
	return printJSON(ctx.Stdout, v, fa.Query)
}

func runTopics(ctx *commandContext, args []string) error {
	var filter model.TopicFilter
	var motivation string
	fa, err := parseFeatureArgs(ctx, "topics", "list", args, func(fs *pflag.FlagSet) {
		fs.StringVar(&filter.Status, "status", "", "Filter by status")
		fs.StringVar(&filter.Department, "department", "", "Filter by department")
		fs.StringVar(&filter.Type, "type", "", "Filter by type")
		fs.StringVar(&filter.Search, "search", "", "Free-text search")
		fs.StringVar(&motivation, "motivation", "", "Motivation text for apply")
	})
	if err != nil {
		return err
	}
	topics := ctx.Container.API.Topics

	switch fa.Sub {
	case "list":
		v, err := topics.List(ctx.Ctx, filter)
		return emit(ctx, fa, v, err)
	case "available":
		v, err := topics.Available(ctx.Ctx)
		return emit(ctx, fa, v, err)
	case "applications":
		v, err := topics.MyApplications(ctx.Ctx)
		return emit(ctx, fa, v, err)
	case "get":
		id, err := parseID(fa)
		if err != nil {
			return err
		}
		v, err := topics.Get(ctx.Ctx, id)
		return emit(ctx, fa, v, err)
	case "apply":
		id, err := parseID(fa)
		if err != nil {
			return err
		}
		v, err := topics.Apply(ctx.Ctx, id, motivation)
		return emit(ctx, fa, v, err)
	default:
		return usageError("unknown topics subcommand %q", fa.Sub)
	}
}

func runReports(ctx *commandContext, args []string) error {
	var filter model.ReportFilter
	var output string
	fa, err := parseFeatureArgs(ctx, "reports", "mine", args, func(fs *pflag.FlagSet) {
		fs.StringVar(&filter.Status, "status", "", "Filter by status")
		fs.StringVar(&filter.Type, "type", "", "Filter by type")
		fs.StringVarP(&output, "output", "o", "", "Download destination (default: server filename)")
	})
	if err != nil {
		return err
	}
	reports := ctx.Container.API.Reports

	switch fa.Sub {
	case "mine":
		v, err := reports.Mine(ctx.Ctx, filter)
		return emit(ctx, fa, v, err)
	case "all":
		v, err := reports.All(ctx.Ctx, filter)
		return emit(ctx, fa, v, err)
	case "get":
		id, err := parseID(fa)
		if err != nil {
			return err
		}
		v, err := reports.Get(ctx.Ctx, id)
		return emit(ctx, fa, v, err)
	case "submit":
		id, err := parseID(fa)
		if err != nil {
			return err
		}
		v, err := reports.Submit(ctx.Ctx, id)
		return emit(ctx, fa, v, err)
	case "upload":
		return uploadReport(ctx, fa)
	case "download":
		return downloadReport(ctx, fa, output)
	default:
		return usageError("unknown reports subcommand %q", fa.Sub)
	}
}

func uploadReport(ctx *commandContext, fa featureArgs) error {
	id, err := parseID(fa)
	if err != nil {
		return err
	}
	if len(fa.Rest) < 2 {
		return usageError("upload needs an ID and a file")
	}
	f, err := os.Open(fa.Rest[1])
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	v, err := ctx.Container.API.Reports.Upload(ctx.Ctx, id, filepath.Base(f.Name()), f)
	return emit(ctx, fa, v, err)
}

func downloadReport(ctx *commandContext, fa featureArgs, output string) error {
	id, err := parseID(fa)
	if err != nil {
		return err
	}
	body, filename, err := ctx.Container.API.Reports.Download(ctx.Ctx, id)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	if output == "-" {
		_, err = io.Copy(ctx.Stdout, body)
		return err
	}
	if output == "" {
		output = filepath.Base(filename)
		if output == "." || output == string(filepath.Separator) || output == "" {
			output = fmt.Sprintf("report-%d", id)
		}
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", output, err)
	}
	return writeln(ctx.Stdout, output)
}

func runGrades(ctx *commandContext, args []string) error {
	var semester string
	fa, err := parseFeatureArgs(ctx, "grades", "list", args, func(fs *pflag.FlagSet) {
		fs.StringVar(&semester, "semester", "", "Restrict to a semester")
	})
	if err != nil {
		return err
	}
	grades := ctx.Container.API.Grades

	switch fa.Sub {
	case "list":
		v, err := grades.List(ctx.Ctx, semester)
		return emit(ctx, fa, v, err)
	case "stats":
		v, err := grades.Stats(ctx.Ctx)
		return emit(ctx, fa, v, err)
	case "transcript":
		v, err := grades.Transcript(ctx.Ctx)
		return emit(ctx, fa, v, err)
	case "upcoming":
		v, err := grades.UpcomingEvaluations(ctx.Ctx)
		return emit(ctx, fa, v, err)
	default:
		return usageError("unknown grades subcommand %q", fa.Sub)
	}
}

func runEvents(ctx *commandContext, args []string) error {
	var filter model.EventFilter
	var limit int
	fa, err := parseFeatureArgs(ctx, "events", "upcoming", args, func(fs *pflag.FlagSet) {
		fs.StringVar(&filter.Type, "type", "", "Filter by event type")
		fs.StringVar(&filter.Status, "status", "", "Filter by status")
		fs.StringVar(&filter.StartDate, "from", "", "Start date (YYYY-MM-DD)")
		fs.StringVar(&filter.EndDate, "to", "", "End date (YYYY-MM-DD)")
		fs.BoolVar(&filter.IncludePublic, "public", false, "Include public events (sent without the session token)")
		fs.IntVar(&limit, "limit", 10, "Maximum upcoming events")
	})
	if err != nil {
		return err
	}
	events := ctx.Container.API.Events

	switch fa.Sub {
	case "list":
		v, err := events.List(ctx.Ctx, filter)
		return emit(ctx, fa, v, err)
	case "upcoming":
		v, err := events.Upcoming(ctx.Ctx, limit)
		return emit(ctx, fa, v, err)
	case "date":
		if len(fa.Rest) < 1 {
			return usageError("date needs YYYY-MM-DD")
		}
		v, err := events.ByDate(ctx.Ctx, fa.Rest[0])
		return emit(ctx, fa, v, err)
	case "get":
		id, err := parseID(fa)
		if err != nil {
			return err
		}
		v, err := events.Get(ctx.Ctx, id)
		return emit(ctx, fa, v, err)
	case "stats":
		v, err := events.Stats(ctx.Ctx)
		return emit(ctx, fa, v, err)
	default:
		return usageError("unknown events subcommand %q", fa.Sub)
	}
}

func runDashboard(ctx *commandContext, args []string) error {
	fa, err := parseFeatureArgs(ctx, "dashboard", "", args, nil)
	if err != nil {
		return err
	}
	if fa.Sub == "" {
		// Land where the web front would.
		fa.Sub = "student"
		if u := ctx.Container.Sessions.CurrentUser(); u.HasRole(domainauth.RoleAdmin) {
			fa.Sub = "admin"
		}
	}

	dash := ctx.Container.Dashboard
	switch fa.Sub {
	case "student":
		v, err := dash.Student(ctx.Ctx)
		return emit(ctx, fa, v, err)
	case "admin":
		v, err := dash.Admin(ctx.Ctx)
		return emit(ctx, fa, v, err)
	default:
		return usageError("unknown dashboard %q", fa.Sub)
	}
}
