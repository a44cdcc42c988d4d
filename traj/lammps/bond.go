package lammps

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

//BondReader reads the per-step connection tables written by the reaxff
//bond dump ("fix reaxff/bonds"). Each step carries, per atom, the ids of
//its bonded neighbors and the corresponding bond orders.
type BondReader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	filename string
	natoms   int
	frames   int
	readable bool
}

//NewBondReader opens name for reading
func NewBondReader(name string) (*BondReader, error) {
	B := new(BondReader)
	B.filename = name
	var err error
	B.f, B.z, B.h, err = openTraj(name)
	if err != nil {
		return nil, errDecorate(err, "NewBondReader")
	}
	B.readable = true
	return B, nil
}

//Readable returns true if the trajectory can still be read
func (B *BondReader) Readable() bool {
	return B.readable
}

//Len returns the number of atoms per frame, or -1 if no frame has been
//read yet.
func (B *BondReader) Len() int {
	if B.frames == 0 {
		return -1
	}
	return B.natoms
}

//Close closes the file and marks the reader as unreadable
func (B *BondReader) Close() {
	if B.z != nil {
		B.z.Close()
	}
	if B.f != nil {
		B.f.Close()
	}
	B.readable = false
}

//Next reads the next connection table. It returns the timestep, a per-atom
//list of bonded neighbors (zero-based) and the matching integer bond
//orders. A dataset.LastFrameError is returned at the end of the file.
func (B *BondReader) Next() (int, [][]int, [][]int, error) {
	if !B.readable {
		return -1, nil, nil, Error{TrajUnIni, B.filename, []string{"Next"}, true}
	}
	step, natoms, err := B.header()
	if err != nil {
		return -1, nil, nil, err
	}
	if B.frames > 0 && natoms != B.natoms {
		return B.fail("number of particles changed along the trajectory")
	}
	B.natoms = natoms
	bonds := make([][]int, natoms)
	orders := make([][]int, natoms)
	for read := 0; read < natoms; {
		line, err := B.nextLine()
		if err != nil {
			return B.fail("connection table cut mid frame")
		}
		if strings.HasPrefix(line, "#") {
			continue //per-frame comment block
		}
		if err := B.entry(line, bonds, orders); err != nil {
			return -1, nil, nil, err
		}
		read++
	}
	B.frames++
	return step, bonds, orders, nil
}

//header scans for the "# Timestep" line opening the next frame and the
//"# Number of particles" line that follows it.
func (B *BondReader) header() (step, natoms int, err error) {
	step, natoms = -1, -1
	for {
		line, err := B.nextLine()
		if err != nil {
			if step >= 0 {
				return -1, -1, Error{"connection table cut in the header", B.filename, []string{"header"}, true}
			}
			B.Close()
			return -1, -1, newlastFrameError(B.filename, "Next")
		}
		s := strings.Fields(line)
		if len(s) >= 3 && s[0] == "#" && s[1] == "Timestep" {
			step, err = strconv.Atoi(s[2])
			if err != nil {
				return -1, -1, Error{"can't parse timestep: " + line, B.filename, []string{"header"}, true}
			}
			continue
		}
		if len(s) >= 5 && s[0] == "#" && s[1] == "Number" && s[3] == "particles" {
			natoms, err = strconv.Atoi(s[4])
			if err != nil || natoms <= 0 {
				return -1, -1, Error{"can't parse the number of particles: " + line, B.filename, []string{"header"}, true}
			}
			if step < 0 {
				return -1, -1, Error{"particle count seen before any timestep", B.filename, []string{"header"}, true}
			}
			return step, natoms, nil
		}
	}
}

//entry parses one atom line. The format is:
//id type nb neigh_1 ... neigh_nb mol bo_1 ... bo_nb abo nlp q
func (B *BondReader) entry(line string, bonds, orders [][]int) error {
	s := strings.Fields(line)
	if len(s) < 3 {
		return Error{"truncated connection table line: " + line, B.filename, []string{"entry"}, true}
	}
	id, err1 := strconv.Atoi(s[0])
	nb, err2 := strconv.Atoi(s[2])
	if err1 != nil || err2 != nil || id < 1 || id > len(bonds) || nb < 0 {
		return Error{"bad connection table line: " + line, B.filename, []string{"entry"}, true}
	}
	if len(s) < 4+2*nb {
		return Error{"connection table line shorter than its neighbor count: " + line, B.filename, []string{"entry"}, true}
	}
	bo := make([]int, 0, nb)
	ne := make([]int, 0, nb)
	for i := 0; i < nb; i++ {
		n, err := strconv.Atoi(s[3+i])
		if err != nil || n < 1 {
			return Error{"bad neighbor id: " + s[3+i], B.filename, []string{"entry"}, true}
		}
		ne = append(ne, n-1)
		v, err := strconv.ParseFloat(s[4+nb+i], 64)
		if err != nil {
			return Error{"bad bond order: " + s[4+nb+i], B.filename, []string{"entry"}, true}
		}
		//bond orders reported below 0.5 still count as single bonds here
		o := int(math.Round(v))
		if o < 1 {
			o = 1
		}
		bo = append(bo, o)
	}
	bonds[id-1] = ne
	orders[id-1] = bo
	return nil
}

func (B *BondReader) fail(message string) (int, [][]int, [][]int, error) {
	B.readable = false
	return -1, nil, nil, Error{message, B.filename, []string{"Next"}, true}
}

func (B *BondReader) nextLine() (string, error) {
	for {
		line, err := B.h.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}
