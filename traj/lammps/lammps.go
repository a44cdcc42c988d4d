//Package lammps reads LAMMPS trajectories: the text dump file with the
//per-atom positions and, when the simulation used a reactive force field,
//the bond file with the per-step connection table. Files compressed with
//gzip or zstd are decompressed on the fly.
package lammps

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//This will cause an additional indirection but each Read call takes long
//enough to make the delay irrelevant.
//zstd.Decoder does not implement io.ReadCloser, hence the wrapper.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//openTraj opens a trajectory file for reading, stacking a decompressor on
//top if the name ends in .gz or .zst.
func openTraj(name string) (*os.File, io.ReadCloser, *bufio.Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, nil, err
	}
	var z io.ReadCloser
	switch {
	case strings.HasSuffix(name, ".gz"):
		z, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, nil, Error{"can't read gzip header: " + err.Error(), name, []string{"openTraj"}, true}
		}
	case strings.HasSuffix(name, ".zst"):
		r, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, nil, Error{"can't open zstd stream: " + err.Error(), name, []string{"openTraj"}, true}
		}
		z = zstdql{r.Close, r}
	}
	var h *bufio.Reader
	if z != nil {
		h = bufio.NewReader(z)
	} else {
		h = bufio.NewReader(f)
	}
	return f, z, h, nil
}

//Errors

//TrajUnIni is the message used when reading from a closed trajectory
const TrajUnIni = "Trajectory not initialized to be read"

//errDecorate annotates err with the name of the calling function when err
//supports it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(interface{ Decorate(string) []string })
	if ok {
		err2.Decorate(caller)
		return err2.(error)
	}
	return err
}

//Error is the structure for LAMMPS trajectory errors. It fulfills
//dataset.Error and dataset.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("lammps file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error
func (err Error) Format() string { return "lammps" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//lastFrameError implements dataset.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "lammps" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
