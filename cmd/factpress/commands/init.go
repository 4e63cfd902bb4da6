package commands

import (
	"fmt"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/site"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration, templates, topics and stylesheet"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	return RunInit(root.Config, i.Force)
}

// RunInit writes the example config and scaffolds the directories it names.
func RunInit(configPath string, force bool) error {
	fmt.Println("Initializing factpress site")
	fmt.Printf("Writing configuration to %s\n", configPath)
	if err := config.WriteExample(configPath, force); err != nil {
		fmt.Println("Initialization failed")
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	res, err := site.Scaffold(cfg, force)
	if err != nil {
		fmt.Println("Initialization failed")
		return err
	}
	for _, p := range res.Written {
		fmt.Printf("  wrote %s\n", p)
	}
	for _, p := range res.Skipped {
		fmt.Printf("  kept existing %s\n", p)
	}
	fmt.Println("initialized successfully")
	return nil
}
