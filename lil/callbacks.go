package lil

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Callbacks let the host intercept I/O and variable access. Nil fields fall
// back to the defaults: output goes to Config.Stdout, files are read and
// written on the local filesystem and exit does nothing.
type Callbacks struct {
	Exit  func(interp *Interp, code *Value)
	Write func(interp *Interp, text string)
	Read  func(interp *Interp, name string) (string, error)
	Store func(interp *Interp, name, data string) error
	// Source loads the code for the source command. Read is used when it is
	// nil.
	Source func(interp *Interp, name string) (string, error)
	// Error is called when an evaluation started by Eval ends with an error.
	Error func(interp *Interp, err *ScriptError)
	// SetVar intercepts assignments to global variables. Returning ok=false
	// vetoes the assignment; a non-nil replacement is stored instead.
	SetVar func(interp *Interp, name string, value *Value) (replacement *Value, ok bool)
	// GetVar intercepts reads of global and unset variables.
	GetVar func(interp *Interp, name string) (*Value, bool)
}

func (interp *Interp) write(text string) {
	if interp.callbacks.Write != nil {
		interp.callbacks.Write(interp, text)
		return
	}
	_, _ = io.WriteString(interp.config.Stdout, text)
}

func (interp *Interp) readFile(name string) (string, error) {
	if interp.callbacks.Read != nil {
		return interp.callbacks.Read(interp, name)
	}
	return ReadFile(name)
}

func (interp *Interp) storeFile(name, data string) error {
	if interp.callbacks.Store != nil {
		return interp.callbacks.Store(interp, name, data)
	}
	return StoreFile(name, data)
}

func (interp *Interp) sourceFile(name string) (string, error) {
	if interp.callbacks.Source != nil {
		return interp.callbacks.Source(interp, name)
	}
	return interp.readFile(name)
}

// ReadFile reads a file, decompressing it when the name ends in .gz or .zst.
func ReadFile(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer zr.Close()
		r = zr
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return "", err
		}
		defer dec.Close()
		r = dec
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// StoreFile writes data to a file, compressing it when the name ends in .gz
// or .zst.
func StoreFile(name, data string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	var w io.WriteCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		w = gzip.NewWriter(f)
	case ".zst":
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return err
		}
		w = enc
	}
	if w == nil {
		if _, err := io.WriteString(f, data); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	if _, err := io.WriteString(w, data); err != nil {
		w.Close()
		f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
