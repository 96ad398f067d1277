package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"gator/adapter/store"
	"gator/domain"
	"gator/internal/config"
	"gator/internal/logger"
)

// CLI is the command grammar of gator.
type CLI struct {
	Config string `help:"Path to the config file (default $GATOR_CONFIG or ~/.gatorconfig.yaml)." type:"path" placeholder:"PATH"`

	Register RegisterCmd `cmd:"" help:"Create a user and log in as them."`
	Login    LoginCmd    `cmd:"" help:"Switch the current user."`
	Reset    ResetCmd    `cmd:"" help:"Delete all users, feeds and posts."`
	Users    UsersCmd    `cmd:"" help:"List users."`

	Agg         AggCmd         `cmd:"" help:"Fetch feeds in a loop until interrupted."`
	SetInterval SetIntervalCmd `cmd:"" help:"Change the fetch interval of a running aggregator."`
	Status      StatusCmd      `cmd:"" help:"Show the state of a running aggregator."`

	AddFeed    AddFeedCmd    `cmd:"" name:"addfeed" help:"Add a feed and follow it."`
	Feeds      FeedsCmd      `cmd:"" help:"List all feeds."`
	DeleteFeed DeleteFeedCmd `cmd:"" name:"deletefeed" help:"Delete a feed you added."`
	Follow     FollowCmd     `cmd:"" help:"Follow an existing feed."`
	Following  FollowingCmd  `cmd:"" help:"List the feeds you follow."`
	Unfollow   UnfollowCmd   `cmd:"" help:"Stop following a feed."`

	Browse   BrowseCmd   `cmd:"" help:"Show the newest posts from the feeds you follow."`
	Articles ArticlesCmd `cmd:"" help:"Show the newest posts of one feed."`
}

// App wires the grammar to its collaborators. Zero fields fall back to the
// process defaults.
type App struct {
	Out       io.Writer
	Err       io.Writer
	OpenStore func(ctx context.Context, cfg *config.Config) (domain.Store, error)
	Exit      func(int)
}

// OpenStore connects to the database named in cfg and migrates it.
func OpenStore(ctx context.Context, cfg *config.Config) (domain.Store, error) {
	return store.Open(ctx, cfg.DBDriver, cfg.DBURL)
}

// Run parses args, loads the config and executes the selected command.
func (a *App) Run(ctx context.Context, args []string) error {
	out, errOut, exit, open := a.Out, a.Err, a.Exit, a.OpenStore
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	if exit == nil {
		exit = os.Exit
	}
	if open == nil {
		open = OpenStore
	}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("gator"),
		kong.Description("A command-line RSS aggregator."),
		kong.UsageOnError(),
		kong.Writers(out, errOut),
		kong.Exit(exit),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	path := cli.Config
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		return err
	}
	defer logger.Sync()

	s := &State{Ctx: ctx, Config: cfg, Out: out, open: open}
	defer s.Close()

	logger.Debugf("running %s", kctx.Command())
	return kctx.Run(s)
}
