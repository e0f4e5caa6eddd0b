package schema

import "strings"

// shortHashLen is the number of hex characters shown for abbreviated hashes.
const shortHashLen = 8

// ShortHash abbreviates a full commit identifier for table output.
// Hashes shorter than the abbreviation length are returned unchanged.
func ShortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}

// FirstLine returns the subject line of a commit message, trimmed.
func FirstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}

// ContributorKey returns the normalized identity used to group commits by
// author. The email is preferred since author names vary across machines;
// commits without an email fall back to the name.
func ContributorKey(author, email string) string {
	if e := strings.TrimSpace(strings.ToLower(email)); e != "" {
		return e
	}
	return strings.TrimSpace(author)
}

// DisplayAuthor formats an author for report output as "Name <email>".
// Either part may be missing.
func DisplayAuthor(author, email string) string {
	author = strings.TrimSpace(author)
	email = strings.TrimSpace(email)
	switch {
	case author != "" && email != "":
		return author + " <" + email + ">"
	case author != "":
		return author
	default:
		return email
	}
}
