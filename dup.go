package json2xml

import (
	eng "github.com/reoring/json2xml/internal/engine"
)

// DetectDuplicateKeys streams through the input and reports every duplicate
// object key with its JSON Pointer path, without building a value tree.
// Under Warn all duplicates are collected (up to maxIssues; negative means
// unlimited); under Error the scan stops at the first one. A syntax or I/O
// failure is returned as the error alongside whatever was collected.
func DetectDuplicateKeys(in Input, onDup Severity, maxIssues int) (Issues, error) {
	if onDup == Ignore {
		return nil, nil
	}
	src, closer, err := in.open()
	if err != nil {
		return nil, toIssues(err, CodeIOError)
	}
	defer closer.Close()

	si, err := eng.DetectDuplicateKeys(EngineTokenSource(src), toEngineDup(onDup), maxIssues)
	iss := fromEngineIssues(si)
	if err != nil {
		return iss, toIssues(err, CodeParseError)
	}
	return iss, nil
}

func fromEngineIssues(si []eng.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		iss = AppendIssues(iss, fromEngineIssue(s))
	}
	return iss
}
