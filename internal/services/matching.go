package services

import (
	"strings"
	"unicode"

	"apthire/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxExperienceGap is the widest allowed distance between experience anchors.
const maxExperienceGap = 2

// MatchCandidate is the part of a candidate's profile the matcher reads.
type MatchCandidate struct {
	Skills          []string
	ExperienceLevel models.ExperienceLevel
	Location        string
}

// CandidateFromProfile extracts matching input from a stored profile.
func CandidateFromProfile(p models.Profile) MatchCandidate {
	return MatchCandidate{
		Skills:          p.Skills,
		ExperienceLevel: p.ExperienceLevel,
		Location:        p.Location,
	}
}

// matcher applies the skill, experience and location rules in order and
// stops at the first failing rule. Folding state is per matcher, so a
// matcher must not be shared between goroutines.
type matcher struct {
	fold           cases.Caser
	stripMarks     transform.Transformer
	candidateSkill []string
	candidateExp   int
	candidateLoc   string
}

func newMatcher(c MatchCandidate) *matcher {
	m := &matcher{
		fold:       cases.Fold(),
		stripMarks: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
	for _, s := range c.Skills {
		if s = m.foldText(s); s != "" {
			m.candidateSkill = append(m.candidateSkill, s)
		}
	}
	m.candidateExp = candidateExperienceAnchor(c.ExperienceLevel)
	m.candidateLoc = m.foldPlace(c.Location)
	return m
}

// FilterJobs keeps the jobs that pass every matching rule for the candidate.
func FilterJobs(c MatchCandidate, jobs []models.Job) []models.Job {
	m := newMatcher(c)
	matched := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if m.match(&job) {
			matched = append(matched, job)
		}
	}
	return matched
}

// MatchJob reports whether a single job passes every rule.
func MatchJob(c MatchCandidate, job *models.Job) bool {
	return newMatcher(c).match(job)
}

func (m *matcher) match(job *models.Job) bool {
	return m.skillsOverlap(job.Skills) &&
		m.experienceFits(job.Experience) &&
		m.locationFits(job.Location)
}

// skillsOverlap passes when any candidate skill contains, or is contained
// in, any job skill. Candidates without skills never match.
func (m *matcher) skillsOverlap(jobSkills []string) bool {
	if len(m.candidateSkill) == 0 {
		return false
	}
	for _, raw := range jobSkills {
		js := m.foldText(raw)
		if js == "" {
			continue
		}
		for _, cs := range m.candidateSkill {
			if strings.Contains(cs, js) || strings.Contains(js, cs) {
				return true
			}
		}
	}
	return false
}

func (m *matcher) experienceFits(jobExperience string) bool {
	gap := m.candidateExp - jobExperienceAnchor(jobExperience)
	if gap < 0 {
		gap = -gap
	}
	return gap <= maxExperienceGap
}

// locationFits is lenient: missing data or a remote job always passes.
func (m *matcher) locationFits(jobLocation string) bool {
	jl := m.foldPlace(jobLocation)
	if jl == "" || m.candidateLoc == "" {
		return true
	}
	if strings.Contains(jl, "remote") {
		return true
	}
	return strings.Contains(jl, m.candidateLoc) || strings.Contains(m.candidateLoc, jl)
}

func (m *matcher) foldText(s string) string {
	return m.fold.String(strings.TrimSpace(s))
}

// foldPlace case-folds and drops combining marks so "São Paulo" matches "sao paulo".
func (m *matcher) foldPlace(s string) string {
	folded := m.foldText(s)
	stripped, _, err := transform.String(m.stripMarks, folded)
	if err != nil {
		return folded
	}
	return stripped
}

func candidateExperienceAnchor(level models.ExperienceLevel) int {
	switch level {
	case models.ExperienceOneToThree:
		return 2
	case models.ExperienceThreeToFive:
		return 4
	case models.ExperienceFivePlus:
		return 6
	default:
		return 0
	}
}

// jobExperienceAnchor reads free-text brackets such as "1-3 years".
func jobExperienceAnchor(experience string) int {
	switch {
	case strings.Contains(experience, "1-3"):
		return 1
	case strings.Contains(experience, "3-5"):
		return 3
	case strings.Contains(experience, "5+"):
		return 5
	default:
		return 0
	}
}
