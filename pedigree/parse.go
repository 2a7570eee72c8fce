package pedigree

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads a pedigree from a comma-separated table with a
// header line. Required columns are name, mother, father and trait;
// empty mother and father mark a founder, trait is "1" for observed
// present, "0" for observed absent and empty for unknown.
func ParseCSV(rd io.Reader) (*Pedigree, error) {
	r := csv.NewReader(rd)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading csv header: %v", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"name", "mother", "father", "trait"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column '%s' in csv header", name)
		}
	}

	ped := New()
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		trait := TraitUnknown
		switch rec[cols["trait"]] {
		case "1":
			trait = TraitPresent
		case "0":
			trait = TraitAbsent
		case "":
		default:
			return nil, fmt.Errorf("unknown trait value '%s'", rec[cols["trait"]])
		}

		p := &Person{
			Name:   rec[cols["name"]],
			Mother: rec[cols["mother"]],
			Father: rec[cols["father"]],
			Trait:  trait,
		}
		if err := ped.Add(p); err != nil {
			return nil, err
		}
	}

	if err := ped.Validate(); err != nil {
		return nil, err
	}
	log.Infof("Read %s", ped)
	return ped, nil
}

// ParseFam reads a pedigree from a PLINK .fam file. Columns are
// whitespace separated: family id, person id, father id, mother id,
// sex and phenotype. A parent id of "0" marks a missing parent, the
// phenotype is 2 for affected, 1 for unaffected and 0 or -9 for
// missing. Family ids are ignored; person ids must be unique across
// families.
func ParseFam(rd io.Reader) (*Pedigree, error) {
	ped := New()
	scanner := bufio.NewScanner(rd)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 6 {
			return nil, fmt.Errorf("line %d: expected 6 columns, got %d", line, len(fields))
		}

		father := fields[2]
		mother := fields[3]
		if father == "0" {
			father = ""
		}
		if mother == "0" {
			mother = ""
		}

		trait := TraitUnknown
		switch fields[5] {
		case "2":
			trait = TraitPresent
		case "1":
			trait = TraitAbsent
		case "0", "-9":
		default:
			return nil, fmt.Errorf("line %d: unknown phenotype '%s'", line, fields[5])
		}

		p := &Person{
			Name:   fields[1],
			Mother: mother,
			Father: father,
			Trait:  trait,
		}
		if err := ped.Add(p); err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := ped.Validate(); err != nil {
		return nil, err
	}
	log.Infof("Read %s", ped)
	return ped, nil
}
