// Package validate rejects malformed customer and invoice input before it
// reaches the store.
//
// Three kinds of checks:
//   - structural: presence, minimum lengths, numeric bounds, zip code and
//     email syntax, driven by `validate` struct tags on the domain inputs;
//   - cross-field: an invoice's due date may not precede its invoice date;
//   - uniqueness: no other customer may hold the same email, compared
//     ignoring case.
//
// Every failure is reported per field, keyed by the JSON path of the field
// ("billingAddress.zipCode", "items[0].price"), so a form can show the
// message next to the input. Validators never modify their input.
//
// The uniqueness check reads the current customer list and is therefore a
// check-then-act race: two processes creating the same email at the same
// moment can both pass. rubico assumes a single writer. A multi-writer
// deployment would need a unique index enforced by the store at write time.
package validate
