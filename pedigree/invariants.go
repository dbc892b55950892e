package pedigree

import "fmt"

// Validate walks every layer of p and checks the invariants spec §3/§8
// require to hold for any pedigree that has finished construction or
// restore. It returns the first violation found, or nil.
func (p *Pedigree) Validate() error {
	for grade := 0; grade < p.Generations; grade++ {
		for couple := range p.layers[grade] {
			if err := validateCouple(couple, grade, p.Generations); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateCouple(c *Couple, grade, lastGrade int) error {
	for i := 0; i < 2; i++ {
		x := c.Member(i)
		if x == nil {
			return fmt.Errorf("couple %d: member %d is nil", c.ID(), i)
		}
		if x.Couple() != c {
			return fmt.Errorf("individual %d: mate couple %d does not contain it", x.ID(), c.ID())
		}
	}
	for ch := range c.children {
		if ch.Parent() != c {
			return fmt.Errorf("individual %d: listed as child of couple %d but parent() disagrees", ch.ID(), c.ID())
		}
	}
	if grade == 0 {
		if !c.IsSelfCoupled() {
			return fmt.Errorf("couple %d: in extant layer but not self-coupled", c.ID())
		}
	}
	if grade == lastGrade-1 {
		for i := 0; i < 2; i++ {
			x := c.Member(i)
			if !x.IsFounder() {
				return fmt.Errorf("individual %d: in founder layer but not self-parented", x.ID())
			}
		}
	}
	return nil
}
