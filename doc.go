/*
 * doc.go, part of mddatasetbuilder.
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

//Package dataset provides the data model and the core algorithms to build
//reference datasets for machine-learning force fields out of reactive
//molecular-dynamics trajectories. A trajectory is streamed frame by frame
//(see the traj/lammps subpackage), each frame is partitioned into molecules
//by walking its bond graph, molecules are grouped into species by a
//canonical structural signature, and a diverse subset of configurations per
//species is selected (see the sample subpackage) and written as
//quantum-chemistry inputs (see the gjf subpackage).
package dataset
