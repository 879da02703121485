package ec2

// singular returns the sole element of a lookup result. It never picks a
// best match: an empty list, a list of two or more and a non-list value
// are three distinct errors.
func singular(v any) (any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, &UnexpectedResultError{Value: v}
	}
	switch len(list) {
	case 0:
		return nil, ErrEmptyResult
	case 1:
		return list[0], nil
	default:
		return nil, &AmbiguousResultError{Matches: list}
	}
}
