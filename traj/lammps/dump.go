package lammps

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//DumpReader reads a LAMMPS text dump produced with something like
//"dump 1 all custom N file id type x y z". The id, type, x, y and z columns
//are located from the ITEM: ATOMS header, so extra columns and a different
//column order are fine.
type DumpReader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	filename string
	elements []string //elements[type-1] is the symbol for a LAMMPS atom type
	natoms   int
	box      [3]float64 //edge lengths of the box of the last frame read
	frames   int        //frames read so far
	readable bool
}

//NewDumpReader opens name for reading. elements maps the one-based LAMMPS
//atom types to element symbols.
func NewDumpReader(name string, elements []string) (*DumpReader, error) {
	D := new(DumpReader)
	D.filename = name
	D.elements = elements
	var err error
	D.f, D.z, D.h, err = openTraj(name)
	if err != nil {
		return nil, errDecorate(err, "NewDumpReader")
	}
	D.readable = true
	return D, nil
}

//Readable returns true if the trajectory can still be read
func (D *DumpReader) Readable() bool {
	return D.readable
}

//Len returns the number of atoms per frame, or -1 if no frame has been
//read yet.
func (D *DumpReader) Len() int {
	if D.frames == 0 {
		return -1
	}
	return D.natoms
}

//Box returns the edge lengths, in Angstrom, of the simulation box of the
//last frame read. The box is periodic along every axis with a positive
//length.
func (D *DumpReader) Box() [3]float64 {
	return D.box
}

//Close closes the file and marks the reader as unreadable
func (D *DumpReader) Close() {
	if D.z != nil {
		D.z.Close()
	}
	if D.f != nil {
		D.f.Close()
	}
	D.readable = false
}

//Next reads the next frame and returns its timestep, the per-atom symbols
//and the coordinates, in Angstrom, ordered by atom id. It returns a
//dataset.LastFrameError at the end of the trajectory.
func (D *DumpReader) Next() (int, []string, *mat.Dense, error) {
	if !D.readable {
		return -1, nil, nil, Error{TrajUnIni, D.filename, []string{"Next"}, true}
	}
	line, err := D.nonEmptyLine()
	if err != nil {
		D.Close()
		return -1, nil, nil, newlastFrameError(D.filename, "Next")
	}
	if !strings.HasPrefix(line, "ITEM: TIMESTEP") {
		return D.fail("expected ITEM: TIMESTEP, got: " + line)
	}
	line, err = D.nonEmptyLine()
	if err != nil {
		return D.fail("trajectory cut before the timestep value")
	}
	step, err := strconv.Atoi(strings.Fields(line)[0])
	if err != nil {
		return D.fail("can't parse timestep: " + line)
	}
	line, err = D.nonEmptyLine()
	if err != nil || !strings.HasPrefix(line, "ITEM: NUMBER OF ATOMS") {
		return D.fail("expected ITEM: NUMBER OF ATOMS")
	}
	line, err = D.nonEmptyLine()
	if err != nil {
		return D.fail("trajectory cut before the number of atoms")
	}
	natoms, err := strconv.Atoi(strings.Fields(line)[0])
	if err != nil || natoms <= 0 {
		return D.fail("can't parse the number of atoms: " + line)
	}
	if D.frames > 0 && natoms != D.natoms {
		return D.fail("number of atoms changed along the trajectory")
	}
	D.natoms = natoms
	line, err = D.nonEmptyLine()
	if err != nil || !strings.HasPrefix(line, "ITEM: BOX BOUNDS") {
		return D.fail("expected ITEM: BOX BOUNDS")
	}
	for i := 0; i < 3; i++ {
		if line, err = D.nonEmptyLine(); err != nil {
			return D.fail("trajectory cut in the box bounds")
		}
		s := strings.Fields(line)
		if len(s) < 2 {
			return D.fail("can't parse the box bounds: " + line)
		}
		lo, err1 := strconv.ParseFloat(s[0], 64)
		hi, err2 := strconv.ParseFloat(s[1], 64)
		if err1 != nil || err2 != nil || hi < lo {
			return D.fail("can't parse the box bounds: " + line)
		}
		D.box[i] = hi - lo
	}
	line, err = D.nonEmptyLine()
	if err != nil || !strings.HasPrefix(line, "ITEM: ATOMS") {
		return D.fail("expected ITEM: ATOMS")
	}
	id, typ, x, y, z, err := atomColumns(strings.Fields(line)[2:])
	if err != nil {
		return D.fail(err.Error())
	}
	symbols := make([]string, natoms)
	coords := mat.NewDense(natoms, 3, nil)
	seen := make([]bool, natoms)
	for i := 0; i < natoms; i++ {
		line, err = D.nonEmptyLine()
		if err != nil {
			return D.fail("trajectory cut in the atoms block")
		}
		s := strings.Fields(line)
		if err := D.parseAtom(s, symbols, coords, seen, id, typ, x, y, z); err != nil {
			return -1, nil, nil, err
		}
	}
	D.frames++
	return step, symbols, coords, nil
}

func (D *DumpReader) parseAtom(s []string, symbols []string, coords *mat.Dense, seen []bool, id, typ, x, y, z int) error {
	if len(s) <= id || len(s) <= typ || len(s) <= x || len(s) <= y || len(s) <= z {
		return Error{"atom line has too few columns: " + strings.Join(s, " "), D.filename, []string{"Next"}, true}
	}
	aid, err := strconv.Atoi(s[id])
	if err != nil || aid < 1 || aid > len(symbols) {
		return Error{"atom id out of range: " + s[id], D.filename, []string{"Next"}, true}
	}
	if seen[aid-1] {
		return Error{"duplicate atom id: " + s[id], D.filename, []string{"Next"}, true}
	}
	seen[aid-1] = true
	atyp, err := strconv.Atoi(s[typ])
	if err != nil || atyp < 1 || atyp > len(D.elements) {
		return Error{"atom type without an element assigned: " + s[typ], D.filename, []string{"Next"}, true}
	}
	symbols[aid-1] = D.elements[atyp-1]
	for j, col := range []int{x, y, z} {
		v, err := strconv.ParseFloat(s[col], 64)
		if err != nil {
			return Error{"can't parse coordinate: " + s[col], D.filename, []string{"Next"}, true}
		}
		coords.Set(aid-1, j, v)
	}
	return nil
}

func (D *DumpReader) fail(message string) (int, []string, *mat.Dense, error) {
	D.readable = false
	return -1, nil, nil, Error{message, D.filename, []string{"Next"}, true}
}

//nonEmptyLine returns the next line with any content, with the end of line
//removed.
func (D *DumpReader) nonEmptyLine() (string, error) {
	for {
		line, err := D.h.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

//atomColumns locates the columns needed to rebuild a frame in the header of
//an ITEM: ATOMS block.
func atomColumns(names []string) (id, typ, x, y, z int, err error) {
	id, typ, x, y, z = -1, -1, -1, -1, -1
	for i, v := range names {
		switch v {
		case "id":
			id = i
		case "type":
			typ = i
		case "x", "xu", "xs":
			x = i
		case "y", "yu", "ys":
			y = i
		case "z", "zu", "zs":
			z = i
		}
	}
	if id < 0 || typ < 0 || x < 0 || y < 0 || z < 0 {
		err = Error{"dump lacks one of the id, type, x, y, z columns", "", []string{"atomColumns"}, true}
	}
	return id, typ, x, y, z, err
}
