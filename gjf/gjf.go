//Package gjf writes Gaussian input files for single-point force
//calculations, one file per sampled structure. Only the parts of the format
//needed for force labels are covered.
package gjf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/njzjz/mddatasetbuilder"
	"gonum.org/v1/gonum/mat"
)

//A Job holds the settings shared by every input file of a dataset
type Job struct {
	Method string //e.g. "mn15"
	Basis  string //e.g. "6-31g**"
	NProc  int    //processors requested per calculation
	Charge int    //total charge, almost always 0 for trajectory fragments
}

//Multiplicity returns the spin multiplicity to request for a structure
//with the given atoms: singlet for an even electron count, doublet for an
//odd one. Radicals are everywhere in reactive trajectories, so this comes
//up constantly. It returns an error for an element without a tabulated
//nuclear charge.
func (J *Job) Multiplicity(symbols []string) (int, error) {
	electrons := -J.Charge
	for _, v := range symbols {
		z := dataset.NuclearCharge(v)
		if z <= 0 {
			return 0, fmt.Errorf("no nuclear charge for element %s", v)
		}
		electrons += z
	}
	if electrons%2 == 0 {
		return 1, nil
	}
	return 2, nil
}

//Write writes one input file to w. coords has one row per atom, in
//Angstrom, in the same order as symbols.
func (J *Job) Write(w io.Writer, title string, symbols []string, coords *mat.Dense) error {
	r, c := coords.Dims()
	if r != len(symbols) || c != 3 {
		return fmt.Errorf("gjf: %d symbols but a %dx%d coordinate matrix", len(symbols), r, c)
	}
	mult, err := J.Multiplicity(symbols)
	if err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	if J.NProc > 0 {
		fmt.Fprintf(b, "%%nproc=%d\n", J.NProc)
	}
	fmt.Fprintf(b, "#force %s/%s\n\n", J.Method, J.Basis)
	if title == "" {
		title = "force"
	}
	fmt.Fprintf(b, "%s\n\n", strings.ReplaceAll(title, "\n", " "))
	fmt.Fprintf(b, "%d %d\n", J.Charge, mult)
	for i, v := range symbols {
		fmt.Fprintf(b, "%-2s %14.8f %14.8f %14.8f\n", v, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
	}
	//Gaussian requires a blank line closing the molecule block
	fmt.Fprint(b, "\n")
	return b.Flush()
}

//WriteFile writes one input file to path. The parent directory must
//already exist.
func (J *Job) WriteFile(path, title string, symbols []string, coords *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = J.Write(f, title, symbols, coords)
	err2 := f.Close()
	if err != nil {
		return err
	}
	return err2
}
