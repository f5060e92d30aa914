package swarm

import "strings"

// Table names for per-iteration recording when a database is configured.
const (
	// TblAgents holds each agent's selection and objective per iteration.
	TblAgents = "swarmagents"
	// TblCognitive holds each agent's personal best per iteration.
	TblCognitive = "swarmcognitive"
	// TblBest holds the social best per iteration.
	TblBest = "swarmbest"
)

func (o *Optimizer) initdb() error {
	if o.db == nil {
		return nil
	}

	for _, tbl := range []string{TblAgents, TblCognitive} {
		s := "CREATE TABLE IF NOT EXISTS " + tbl + " (agent INTEGER, iter INTEGER, objective REAL, selection TEXT);"
		if _, err := o.db.Exec(s); err != nil {
			return err
		}
	}
	s := "CREATE TABLE IF NOT EXISTS " + TblBest + " (iter INTEGER, objective REAL, selection TEXT);"
	_, err := o.db.Exec(s)
	return err
}

// record writes the current swarm state.  Iteration 0 is the initialized
// population before any step.
func (o *Optimizer) record() error {
	if o.db == nil {
		return nil
	}

	tx, err := o.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, p := range o.swarm.Agents {
		_, err := tx.Exec("INSERT INTO "+TblAgents+" (agent,iter,objective,selection) VALUES (?,?,?,?);",
			i, o.count, p.Objective, selText(p.Selection))
		if err != nil {
			return err
		}
	}
	for i, p := range o.swarm.Cognitive {
		_, err := tx.Exec("INSERT INTO "+TblCognitive+" (agent,iter,objective,selection) VALUES (?,?,?,?);",
			i, o.count, p.Objective, selText(p.Selection))
		if err != nil {
			return err
		}
	}
	_, err = tx.Exec("INSERT INTO "+TblBest+" (iter,objective,selection) VALUES (?,?,?);",
		o.count, o.swarm.Social.Objective, selText(o.swarm.Social.Selection))
	if err != nil {
		return err
	}

	return tx.Commit()
}

func selText(s []string) string { return strings.Join(s, ",") }
