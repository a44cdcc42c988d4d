/*
 * interfaces.go, part of mddatasetbuilder.
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

// Traj is the interface for any frame source the pipeline can consume.
// The concrete implementations live under traj/; the builder only ever
// sees this interface, so other trajectory formats can be plugged in.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next returns the next frame, already strided and consistency-checked.
	//At the normal end of the trajectory the returned error satisfies
	//LastFrameError.
	Next() (*Frame, error)

	//Close releases the underlying file handles. The object can not be
	//read after this call.
	Close()
}
