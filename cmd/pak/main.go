// Command pak builds, lists and extracts pak asset archives.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/devodev/toy-engine/pak"
)

func init() {
	u, err := user.Current()
	if err != nil {
		currentUserName = "unknown"
		return
	}
	currentUserName = u.Name
}

var (
	currentUserName string
	author          = flag.String("author", currentUserName, "Set the author of the package when compressing")
	version         = flag.Int64("version", 1, "Archive version number to create it with")
	extract         = flag.String("e", "", "Extract the given archive into the destination directory")
	compress        = flag.String("c", "", "Compress the given file/folder")
	list            = flag.String("l", "", "List the contents of the given archive")
	dstFile         = flag.String("f", "out.pak", "Destination file or directory")
)

func main() {
	flag.Parse()

	var opMade bool
	ops := map[string]func() error{
		*compress: compressFiles,
		*extract:  extractFiles,
		*list:     listFiles,
	}
	for arg, op := range ops {
		if arg == "" {
			continue
		}
		if opMade {
			panic(errors.New("only one operation at a time"))
		}
		opMade = true
		if err := op(); err != nil {
			panic(err)
		}
	}

	if !opMade {
		flag.PrintDefaults()
	}
}

func compressFiles() error {
	if _, err := os.Stat(*dstFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	dst, err := os.Create(*dstFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	builder := pak.NewBuilder(pak.Header{
		Author:  *author,
		Created: time.Now().Unix(),
		Version: *version,
	})

	if err := filepath.Walk(*compress, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return builder.Add(filepath.ToSlash(path), f)
	}); err != nil {
		return err
	}

	_, err = builder.WriteTo(dst)
	return err
}

func extractFiles() error {
	ar, err := pak.OpenFile(*extract)
	if err != nil {
		return err
	}
	defer ar.Close()

	for _, name := range ar.Entries() {
		r, err := ar.Open(name)
		if err != nil {
			return err
		}

		path := filepath.Join(*dstFile, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if _, err := io.CopyN(f, r, r.Size()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func listFiles() error {
	ar, err := pak.OpenFile(*list)
	if err != nil {
		return err
	}
	defer ar.Close()

	header := ar.Header()
	fmt.Printf("author: %s, version: %d, created: %s\n",
		header.Author, header.Version, time.Unix(header.Created, 0).Format(time.RFC3339))
	for _, entry := range header.Index {
		fmt.Printf("%12d  %s\n", entry.Size, entry.Name)
	}
	return nil
}
