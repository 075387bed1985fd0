// Command editor is the asset editor shell. It opens pak archives and
// shows their contents.
package main

import (
	"os"

	"github.com/gotk3/gotk3/gtk"
	log "github.com/sirupsen/logrus"
)

func init() {
	gtk.Init(&os.Args)
}

func main() {
	app, err := buildInterface()
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(app.Run(os.Args))
}
