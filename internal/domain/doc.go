// Package domain contains the core business entities of the prompt library:
// the catalog (platforms, categories, curated prompts, prompt actions) and the
// output of AI generation (generated prompts and the generation records that
// snapshot them). It is independent of any storage or delivery mechanism.
package domain
