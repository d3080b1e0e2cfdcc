package app

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"yashubustudio/clusterviz/clusterviz"
)

const fyneAppID = "studio.yashubu.clusterviz"

// Run initializes required resources and starts the desktop UI.
func Run() error {
	cfg, err := clusterviz.LoadConfig("")
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, "clusterviz ", log.LstdFlags)
	session := clusterviz.NewSession(logger)

	a := fyneapp.NewWithID(fyneAppID)
	u := buildUI(a, session, cfg)
	u.w.ShowAndRun()

	if err := clusterviz.SaveConfig("", u.cfg); err != nil {
		logger.Printf("save config: %v", err)
	}
	return nil
}
