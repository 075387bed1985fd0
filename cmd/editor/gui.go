package main

import (
	"errors"
	"fmt"

	"github.com/gobuffalo/packr"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	log "github.com/sirupsen/logrus"

	"github.com/devodev/toy-engine/pak"
)

// Global variables for GTK and resources
var (
	Builder         *gtk.Builder
	StaticResources packr.Box
)

func init() {
	StaticResources = packr.NewBox("./resources")
}

func buildInterface() (*gtk.Application, error) {
	app, err := gtk.ApplicationNew("org.toyengine.editor", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return nil, err
	}

	app.Connect("startup", func() {
		log.Info("Editor starting")
	})

	app.Connect("activate", func() {
		log.Info("Editor activating")

		resource, err := StaticResources.FindString("editor.glade")
		if err != nil {
			log.Fatal(err)
		}

		builder, err := gtk.BuilderNew()
		if err != nil {
			log.Fatal(err)
		}
		if err := builder.AddFromString(resource); err != nil {
			log.Fatal(err)
		}

		Builder = builder

		obj, err := builder.GetObject("mainWindow")
		if err != nil {
			log.Error(err)
			return
		}

		win, ok := obj.(*gtk.Window)
		if !ok {
			log.Error(errors.New("failed to cast Object from builder to Window"))
			return
		}

		if err := connectOpenButton(builder, win); err != nil {
			log.Error(err)
		}

		win.SetDefaultSize(600, 480)
		win.ShowAll()
		app.AddWindow(win)
	})

	app.Connect("shutdown", func() {
		log.Info("Editor shutting down")
	})
	return app, nil
}

func connectOpenButton(builder *gtk.Builder, win *gtk.Window) error {
	buttonObj, err := builder.GetObject("openArchiveButton")
	if err != nil {
		return err
	}
	button, ok := buttonObj.(*gtk.Button)
	if !ok {
		return errors.New("failed to cast Object from builder to Button")
	}

	storeObj, err := builder.GetObject("entryStore")
	if err != nil {
		return err
	}
	store, ok := storeObj.(*gtk.ListStore)
	if !ok {
		return errors.New("failed to cast Object from builder to ListStore")
	}

	button.Connect("clicked", func() {
		chooser, err := gtk.FileChooserDialogNewWith2Buttons(
			"Open archive", win, gtk.FILE_CHOOSER_ACTION_OPEN,
			"Cancel", gtk.RESPONSE_CANCEL,
			"Open", gtk.RESPONSE_ACCEPT)
		if err != nil {
			log.Error(err)
			return
		}
		defer chooser.Destroy()

		if gtk.ResponseType(chooser.Run()) != gtk.RESPONSE_ACCEPT {
			return
		}
		if err := populateEntries(store, chooser.GetFilename()); err != nil {
			log.Error(err)
		}
	})
	return nil
}

func populateEntries(store *gtk.ListStore, path string) error {
	ar, err := pak.OpenFile(path)
	if err != nil {
		return err
	}
	defer ar.Close()

	store.Clear()
	for _, entry := range ar.Header().Index {
		iter := store.Append()
		if err := store.Set(iter,
			[]int{0, 1},
			[]interface{}{entry.Name, fmt.Sprintf("%d", entry.Size)}); err != nil {
			return err
		}
	}
	log.WithField("archive", path).Info("archive loaded")
	return nil
}
