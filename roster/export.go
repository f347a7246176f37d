package roster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteOPB writes m on w in the OPB pseudo-boolean format,
// so that it can be fed to any PB solver.
// If names is true, the name of every decision variable is given in a comment line,
// e.g "* state_o1d1s0 = x1".
// Trivially satisfied constraints are not written.
func (m *Model) WriteOPB(w io.Writer, names bool) error {
	nb := 0
	for _, c := range m.constrs {
		if c.AtLeast > 0 {
			nb++
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "* #variable= %d #constraint= %d\n", m.NbVars(), nb)
	if names {
		for v := 1; v <= m.NbVars(); v++ {
			fmt.Fprintf(bw, "* %s = x%d\n", m.Name(v), v)
		}
	}
	for _, c := range m.constrs {
		if c.AtLeast <= 0 {
			continue
		}
		for _, lit := range c.Lits {
			if lit < 0 {
				bw.WriteString("+1 ~x")
				bw.WriteString(strconv.Itoa(-lit))
			} else {
				bw.WriteString("+1 x")
				bw.WriteString(strconv.Itoa(lit))
			}
			bw.WriteByte(' ')
		}
		bw.WriteString(">= ")
		bw.WriteString(strconv.Itoa(c.AtLeast))
		bw.WriteString(" ;\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write OPB output: %w", err)
	}
	return nil
}

// WriteDIMACS writes the CNF translation of m on w in the DIMACS format.
// If names is true, the name of every decision variable is given in a comment line
// between the prolog and the clauses, e.g "c state_o1d1s0=1".
func (m *Model) WriteDIMACS(w io.Writer, names bool) error {
	cnf := m.CNF()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", cnf.NbVars, len(cnf.Clauses))
	if names {
		for v := 1; v <= m.NbVars(); v++ {
			fmt.Fprintf(bw, "c %s=%d\n", m.Name(v), v)
		}
	}
	for _, clause := range cnf.Clauses {
		for _, lit := range clause {
			bw.WriteString(strconv.Itoa(lit))
			bw.WriteByte(' ')
		}
		bw.WriteString("0\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write DIMACS output: %w", err)
	}
	return nil
}
