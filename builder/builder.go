//Package builder runs the whole dataset pipeline: it streams a LAMMPS
//trajectory, splits every frame into molecules, groups the molecules into
//species by structural signature, picks a diverse subset of configurations
//per species and writes them out as quantum chemistry input files.
//
//The trajectory is read twice. The first pass keeps only signatures, atom
//ids and fingerprints, so the memory spent per frame does not grow with
//the trajectory; the coordinates of the configurations that were actually
//picked are recovered in a second pass.
package builder

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/njzjz/mddatasetbuilder"
	"github.com/njzjz/mddatasetbuilder/deepmd"
	"github.com/njzjz/mddatasetbuilder/fingerprint"
	"github.com/njzjz/mddatasetbuilder/gjf"
	"github.com/njzjz/mddatasetbuilder/report"
	"github.com/njzjz/mddatasetbuilder/sample"
	"github.com/njzjz/mddatasetbuilder/traj/lammps"
)

//Stats summarizes a finished run
type Stats struct {
	Frames   int      //frames used
	Skipped  int      //frames skipped over recoverable problems
	Species  int      //distinct species found
	Written  int      //input files written
	Warnings []string //everything worth telling the user that didn't stop the run
}

//a speciesPool accumulates the occurrences of one species during the
//first pass, with the data selection needs and nothing else
type speciesPool struct {
	species *dataset.Species
	ords    []int       //ordinal of each member within its frame
	fps     [][]float64 //fingerprint of each member
}

//one frame's worth of extraction results, or the error that voided it
type frameResult struct {
	index int
	mols  []*dataset.Molecule
	sigs  []dataset.Signature
	fps   [][]float64
	err   error
}

//Run executes the pipeline described by cfg and returns its statistics.
//The dataset directory only appears, atomically, when the whole export
//succeeded, so a killed run never leaves a half written dataset behind.
func Run(cfg *dataset.Config) (*Stats, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	final := filepath.Join(cfg.OutDir, "dataset_"+cfg.JobName+"_gjf")
	if _, err := os.Stat(final); err == nil {
		return nil, fmt.Errorf("builder: the dataset directory %s already exists", final)
	}
	stats := new(Stats)
	pools, err := collect(cfg, stats)
	if err != nil {
		return nil, err
	}
	species := nameSpecies(pools)
	stats.Species = len(species)
	selected := make([]*selection, 0, len(species))
	for _, pool := range species {
		selected = append(selected, pick(cfg, pool, stats))
	}
	if err := export(cfg, final, selected, stats); err != nil {
		return nil, err
	}
	if cfg.PlotFile != "" {
		counts := make(map[string]int, len(species))
		for _, pool := range species {
			counts[pool.species.Name] = pool.species.Len()
		}
		if err := report.SpeciesBars(counts, cfg.JobName, cfg.PlotFile); err != nil {
			return nil, err
		}
	}
	if cfg.DeePMDDir != "" {
		types := uniqueElements(cfg.Elements)
		systems := []string{filepath.Join(cfg.DeePMDDir, "data")}
		if err := deepmd.WriteTrainJSONs(cfg.DeePMDDir, cfg.DeePMDN, types, systems, cfg.Seed); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

//collect is the first pass: it streams the trajectory through a pool of
//workers and accumulates every species' occurrences, dropping molecules
//with no atom of an element of interest. A frame with a recoverable
//problem is logged and skipped; anything else aborts.
func collect(cfg *dataset.Config, stats *Stats) (map[dataset.Signature]*speciesPool, error) {
	var traj dataset.Traj
	traj, err := lammps.New(cfg.DumpFile, cfg.BondFile, cfg.Elements, cfg.Interval)
	if err != nil {
		return nil, err
	}
	defer traj.Close()
	workers := cfg.CPUs
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eng := fingerprint.NewDefault()
	frames := make(chan *dataset.Frame, workers)
	results := make(chan frameResult, workers)
	quit := make(chan struct{})
	var readErr error
	go func() {
		defer close(frames)
		for {
			frame, err := traj.Next()
			if err != nil {
				readErr = err
				return
			}
			select {
			case frames <- frame:
			case <-quit:
				return
			}
		}
	}()
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for frame := range frames {
				results <- extract(eng, frame)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	interest := make(map[string]bool, len(cfg.Filter))
	for _, e := range cfg.Filter {
		interest[e] = true
	}
	pools := make(map[dataset.Signature]*speciesPool)
	var critical error
	for res := range results {
		if critical != nil {
			continue //drain
		}
		if res.err != nil {
			if derr, ok := res.err.(dataset.Error); ok && !derr.Critical() {
				warning := fmt.Sprintf("skipping frame %d: %v", res.index, res.err)
				log.Print(warning)
				stats.Skipped++
				stats.Warnings = append(stats.Warnings, warning)
				continue
			}
			critical = res.err
			close(quit)
			continue
		}
		stats.Frames++
		for i, mol := range res.mols {
			if len(interest) > 0 && !ofInterest(mol, interest) {
				continue
			}
			pool, ok := pools[res.sigs[i]]
			if !ok {
				pool = &speciesPool{species: &dataset.Species{Sig: res.sigs[i]}}
				pools[res.sigs[i]] = pool
			}
			pool.species.Members = append(pool.species.Members, mol)
			pool.ords = append(pool.ords, i)
			pool.fps = append(pool.fps, res.fps[i])
		}
	}
	if critical != nil {
		return nil, critical
	}
	if readErr != nil {
		if _, ok := readErr.(dataset.LastFrameError); !ok {
			return nil, readErr
		}
	}
	return pools, nil
}

//ofInterest reports whether the molecule contains at least one atom of an
//element of interest
func ofInterest(mol *dataset.Molecule, interest map[string]bool) bool {
	for _, s := range mol.Symbols {
		if interest[s] {
			return true
		}
	}
	return false
}

//extract does the per-frame work: molecules, signatures, fingerprints
func extract(eng *fingerprint.Engine, frame *dataset.Frame) frameResult {
	res := frameResult{index: frame.Index}
	mols, err := frame.Molecules()
	if err != nil {
		res.err = err
		return res
	}
	for _, mol := range mols {
		fp, err := eng.Compute(mol, frame)
		if err != nil {
			return frameResult{index: frame.Index, err: err}
		}
		res.mols = append(res.mols, mol)
		res.sigs = append(res.sigs, mol.Signature())
		res.fps = append(res.fps, fp)
	}
	return res
}

//nameSpecies gives every species a unique, filesystem-safe name and
//returns the pools in name order. The name is the chemical formula, with
//a numeric suffix telling apart species that share a formula but not a
//topology (isomers). Names depend only on the set of signatures found,
//never on arrival order, so parallel runs name species identically.
func nameSpecies(pools map[dataset.Signature]*speciesPool) []*speciesPool {
	byFormula := make(map[string][]dataset.Signature)
	for sig, pool := range pools {
		f := pool.species.Members[0].Formula()
		byFormula[f] = append(byFormula[f], sig)
	}
	out := make([]*speciesPool, 0, len(pools))
	for formula, sigs := range byFormula {
		sort.Slice(sigs, func(i, j int) bool { return sigs[i] < sigs[j] })
		for i, sig := range sigs {
			name := formula
			if i > 0 {
				name = fmt.Sprintf("%s_%d", formula, i+1)
			}
			pools[sig].species.Name = name
			out = append(out, pools[sig])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].species.Name < out[j].species.Name })
	return out
}

//a selection is one species' SelectedSet plus, per member, the ordinal
//the molecule had within its frame, which the file names encode
type selection struct {
	set  *dataset.SelectedSet
	ords []int
}

//pick runs the diversity selection for one species and reports when it
//could not fill the request
func pick(cfg *dataset.Config, pool *speciesPool, stats *Stats) *selection {
	sp := pool.species
	cands := make([]sample.Candidate, sp.Len())
	byKey := make(map[[2]int]*dataset.Molecule, sp.Len())
	for i, mol := range sp.Members {
		cands[i] = sample.Candidate{Frame: mol.FrameIndex, Mol: pool.ords[i], FP: pool.fps[i]}
		byKey[[2]int{mol.FrameIndex, pool.ords[i]}] = mol
	}
	picked := sample.Select(cands, cfg.Samples, cfg.Epsilon)
	want := cfg.Samples
	if sp.Len() < want {
		want = sp.Len()
	}
	if len(picked) < want {
		warning := fmt.Sprintf("species %s: only %d of %d requested configurations are distinct enough",
			sp.Name, len(picked), want)
		log.Print(warning)
		stats.Warnings = append(stats.Warnings, warning)
	}
	sel := &selection{set: &dataset.SelectedSet{Species: sp}}
	for _, c := range picked {
		sel.set.Members = append(sel.set.Members, byKey[[2]int{c.Frame, c.Mol}])
		sel.ords = append(sel.ords, c.Mol)
	}
	return sel
}

//export is the second pass: it re-reads the dump for the frames that hold
//picked configurations and writes one input file per configuration, into
//a staging directory renamed into place at the end.
func export(cfg *dataset.Config, final string, selected []*selection, stats *Stats) error {
	staging := final + ".part"
	if err := os.RemoveAll(staging); err != nil {
		return err
	}
	if err := os.MkdirAll(staging, 0755); err != nil {
		return err
	}
	//pending maps a frame index to the configurations waiting for it
	type item struct {
		dir  string
		base string
		mol  *dataset.Molecule
	}
	pending := make(map[int][]item)
	npending := 0
	job := &gjf.Job{Method: cfg.Method, Basis: cfg.Basis, NProc: cfg.NProc}
	for _, sel := range selected {
		name := sel.set.Species.Name
		dir := filepath.Join(staging, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		for i, mol := range sel.set.Members {
			base := fmt.Sprintf("%s_%s_%d_%d", cfg.JobName, name, mol.FrameIndex, sel.ords[i])
			pending[mol.FrameIndex] = append(pending[mol.FrameIndex], item{dir, base, mol})
			npending++
		}
	}
	D, err := lammps.NewDumpReader(cfg.DumpFile, cfg.Elements)
	if err != nil {
		return err
	}
	defer D.Close()
	for index := 0; npending > 0; index++ {
		step, symbols, coords, err := D.Next()
		if err != nil {
			if _, ok := err.(dataset.LastFrameError); ok {
				return dataset.NewMalformedTrajectory(index, "the trajectory shrank between the two passes")
			}
			return err
		}
		items := pending[index]
		if len(items) == 0 {
			continue
		}
		frame := &dataset.Frame{Index: index, Step: step, Symbols: symbols, Coords: coords, Box: D.Box()}
		for _, it := range items {
			path := filepath.Join(it.dir, it.base+".gjf")
			if err := job.WriteFile(path, it.base, it.mol.Symbols, it.mol.CoordsIn(frame)); err != nil {
				return err
			}
			stats.Written++
		}
		npending -= len(items)
		delete(pending, index)
	}
	return os.Rename(staging, final)
}

func uniqueElements(elements []string) []string {
	seen := make(map[string]bool, len(elements))
	out := make([]string, 0, len(elements))
	for _, e := range elements {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}
