package pdb

import (
	"github.com/TuftsBCB/seq"
)

// SeqresAtoms returns a slice with one entry for every residue in the SEQRES
// records of the chain given. Each entry is the residue from the ATOM records
// that corresponds to that SEQRES residue, or nil if the residue has no ATOM
// records. If the chain has no SEQRES records, nil is returned.
func (s *Structure) SeqresAtoms(ident byte) []*Residue {
	seqres := s.Seqres[ident]
	if len(seqres) == 0 {
		return nil
	}
	var atomResidues []*Residue
	for _, r := range s.ChainResidues(ident) {
		if IsAmino(r.Name) {
			atomResidues = append(atomResidues, r)
		}
	}
	if mapped := seqAtomsGuess(seqres, atomResidues); mapped != nil {
		return mapped
	}
	return seqAtomsAlign(seqres, atomResidues)
}

// seqAtomsGuess maps residues one to one when the SEQRES and ATOM records
// agree exactly. Otherwise nil is returned.
func seqAtomsGuess(seqres []string, rs []*Residue) []*Residue {
	if len(seqres) != len(rs) {
		return nil
	}
	for i, r := range rs {
		if seqres[i] != r.Name {
			return nil
		}
	}
	return append([]*Residue(nil), rs...)
}

// seqAtomsAlign uses a global alignment between the SEQRES sequence and the
// ATOM sequence to find the correspondence.
func seqAtomsAlign(seqres []string, rs []*Residue) []*Residue {
	atomSeq := make([]seq.Residue, len(rs))
	for i, r := range rs {
		atomSeq[i] = AminoAbbrev(r.Name)
	}
	aligned := seq.NeedlemanWunsch(seqresAbbrev(seqres), atomSeq,
		seq.SubstBlosum62)

	mapped := make([]*Residue, len(seqres))
	seqi, atomi := 0, 0
	for i := range aligned.A {
		a, b := aligned.A[i], aligned.B[i]
		switch {
		case a == '-':
			// An ATOM residue without a SEQRES entry.
			atomi++
		case b == '-':
			seqi++
		default:
			mapped[seqi] = rs[atomi]
			seqi++
			atomi++
		}
	}
	return mapped
}

// MissingResidues returns the residues of the chain given that appear in the
// SEQRES records but not in the ATOM records. REMARK 465 is used when it
// lists anything for the chain. Otherwise, the missing residues are found by
// aligning SEQRES with the ATOM records, and their sequence numbers are
// guessed from their nearest neighbor with ATOM records.
func (s *Structure) MissingResidues(ident byte) []*Residue {
	var missing []*Residue
	for _, r := range s.Missing {
		if r.Chain == ident {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return missing
	}

	seqres := s.Seqres[ident]
	mapped := s.SeqresAtoms(ident)
	for i, r := range mapped {
		if r != nil {
			continue
		}
		missing = append(missing, &Residue{
			Name:          seqres[i],
			SequenceNum:   guessSequenceNum(mapped, i),
			InsertionCode: ' ',
			Chain:         ident,
		})
	}
	return missing
}

// guessSequenceNum infers a sequence number for the unmapped SEQRES position
// i by counting from the closest mapped residue before it, or after it if
// there is none before.
func guessSequenceNum(mapped []*Residue, i int) int {
	for j := i - 1; j >= 0; j-- {
		if mapped[j] != nil {
			return mapped[j].SequenceNum + (i - j)
		}
	}
	for j := i + 1; j < len(mapped); j++ {
		if mapped[j] != nil {
			return mapped[j].SequenceNum - (j - i)
		}
	}
	return i + 1
}
