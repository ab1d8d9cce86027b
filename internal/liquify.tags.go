package internal

// RegisterBuiltinTags registers the built-in tag set. Block
// terminators (endfor, endif, else, elsif) are not tags themselves;
// the owning block consumes them while parsing its body.
func RegisterBuiltinTags(r *TagRegistry) {
	r.Register(TagNameFor, ParseForTag)
	r.Register(TagNameBreak, ParseBreakTag)
	r.Register(TagNameContinue, ParseContinueTag)
	r.Register(TagNameIf, ParseIfTag)
	r.Register(TagNameAssign, ParseAssignTag)
}
