package lammps

import (
	"github.com/njzjz/mddatasetbuilder"
)

//Trajectory reads a LAMMPS dump and, optionally, the matching reaxff bond
//file, in lockstep, and produces whole frames. When no bond file is given
//the connectivity is rebuilt from the geometry on every frame. It fulfills
//dataset.Traj.
type Trajectory struct {
	dump     *DumpReader
	bond     *BondReader //nil when bonds come from the geometry
	interval int
	read     int //raw frames consumed from the files
	readable bool
}

//New opens dumpfile, and bondfile if non-empty, for reading. elements maps
//the one-based LAMMPS atom types to element symbols. Only every interval-th
//frame is returned by Next, starting from the first.
func New(dumpfile, bondfile string, elements []string, interval int) (*Trajectory, error) {
	if interval < 1 {
		interval = 1
	}
	T := new(Trajectory)
	T.interval = interval
	var err error
	T.dump, err = NewDumpReader(dumpfile, elements)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	if bondfile != "" {
		T.bond, err = NewBondReader(bondfile)
		if err != nil {
			T.dump.Close()
			return nil, errDecorate(err, "New")
		}
	}
	T.readable = true
	return T, nil
}

//Readable returns true if the trajectory can still be read
func (T *Trajectory) Readable() bool {
	return T.readable
}

//Len returns the number of atoms per frame, or -1 if no frame has been
//read yet.
func (T *Trajectory) Len() int {
	return T.dump.Len()
}

//Close closes the underlying files
func (T *Trajectory) Close() {
	T.dump.Close()
	if T.bond != nil {
		T.bond.Close()
	}
	T.readable = false
}

//Next returns the next retained frame. Frame indexes count every frame in
//the files, so a skipped frame still advances them. Next returns a
//dataset.LastFrameError at the normal end of the trajectory, and a critical
//error if the dump and the bond file fall out of step.
func (T *Trajectory) Next() (*dataset.Frame, error) {
	if !T.readable {
		return nil, Error{TrajUnIni, T.dump.filename, []string{"Next"}, true}
	}
	for {
		frame, err := T.one()
		if err != nil {
			if _, ok := err.(dataset.LastFrameError); ok {
				T.Close()
			}
			return nil, err
		}
		if frame.Index%T.interval == 0 {
			return frame, nil
		}
	}
}

//one reads one raw frame from both files, retained or not
func (T *Trajectory) one() (*dataset.Frame, error) {
	step, symbols, coords, err := T.dump.Next()
	if err != nil {
		return nil, errDecorate(err, "Next")
	}
	index := T.read
	T.read++
	frame := &dataset.Frame{Index: index, Step: step, Symbols: symbols, Coords: coords, Box: T.dump.Box()}
	if T.bond == nil {
		frame.Bonds, err = dataset.AssignBonds(symbols, coords, frame.Box)
		if err != nil {
			return nil, errDecorate(err, "Next")
		}
		return frame, nil
	}
	bstep, bonds, orders, err := T.bond.Next()
	if err != nil {
		if _, ok := err.(dataset.LastFrameError); ok {
			return nil, dataset.NewMalformedTrajectory(index, "bond file ends before the dump")
		}
		return nil, errDecorate(err, "Next")
	}
	if bstep != step {
		return nil, dataset.NewMalformedTrajectory(index, "dump at step %d but bond file at step %d", step, bstep)
	}
	if len(bonds) != len(symbols) {
		return nil, dataset.NewMalformedTrajectory(index, "dump has %d atoms but the bond file has %d", len(symbols), len(bonds))
	}
	frame.Bonds = bonds
	frame.Orders = orders
	return frame, nil
}
