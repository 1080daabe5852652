package engine

import "io"

// DetectDuplicateKeys scans a token source and reports every duplicate
// object key with its JSON Pointer path, without building a value tree.
// maxIssues < 0 means unlimited, 0 disables collection, > 0 caps it.
// Under DupError the scan stops at the first duplicate.
func DetectDuplicateKeys(src TokenSource, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}

	var issues []SimpleIssue
	capped := false
	sink := func(si SimpleIssue) {
		if maxIssues == 0 || capped {
			return
		}
		issues = append(issues, si)
		if maxIssues > 0 && len(issues) >= maxIssues {
			capped = true
		}
	}

	enforced := WrapWithEnforcement(src, EnforceOptions{
		OnDuplicate: onDup,
		IssueSink:   sink,
	})
	for {
		_, err := enforced.NextToken()
		if err == io.EOF {
			return issues, nil
		}
		if err != nil {
			if ie, ok := err.(IssueError); ok && ie.Code == CodeDuplicateKey {
				issues = append(issues, ie.SimpleIssue)
				return issues, nil
			}
			return issues, err
		}
	}
}
