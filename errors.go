/*
 * errors.go, part of mddatasetbuilder.
 *
 *
 * Copyright 2026 The mddatasetbuilder authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dataset

import "fmt"

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// The decorate slice should contain a list of the functions in the calling
// stack, plus, for each function, any relevant information, or nothing.
type Error interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectory sources.
type TrajError interface {
	Error
	FileName() string
	Format() string
}

// LastFrameError has a useless method to distinguish the harmless
// end-of-trajectory condition from real TrajErrors, so it can be filtered
// in a type switch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination()
}

// CError is the concrete error type of the dataset package. Critical errors
// void the whole run; non-critical ones void a single frame, which the
// pipeline skips with a warning.
type CError struct {
	msg      string
	frame    int //the trajectory frame the error refers to, or -1.
	deco     []string
	critical bool
}

func (err *CError) Error() string {
	if err.frame >= 0 {
		return fmt.Sprintf("frame %d: %s", err.frame, err.msg)
	}
	return err.msg
}

//Decorate adds the dec string to the decoration slice of strings of the
//error and returns the resulting slice. If dec is empty, it just returns
//the current decoration.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error voids the whole run.
func (err *CError) Critical() bool { return err.critical }

//Frame returns the trajectory frame the error refers to, or -1 if the
//error is not tied to a particular frame.
func (err *CError) Frame() int { return err.frame }

//NewMalformedTrajectory returns a critical error: the dump and bond files
//disagree with each other, or a file is internally inconsistent.
func NewMalformedTrajectory(frame int, format string, a ...interface{}) *CError {
	return &CError{msg: "malformed trajectory: " + fmt.Sprintf(format, a...), frame: frame, critical: true}
}

//NewMalformedMolecule returns a non-critical error: one frame's bond table
//references atoms that don't exist. The policy, implemented by the builder,
//is to skip the frame, log, and continue, as a single corrupt frame should
//not void the trajectory.
func NewMalformedMolecule(frame int, format string, a ...interface{}) *CError {
	return &CError{msg: "malformed molecule: " + fmt.Sprintf(format, a...), frame: frame, critical: false}
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. Using it on any other error is a
//programming mistake, so it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
