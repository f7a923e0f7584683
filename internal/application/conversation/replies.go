package conversation

// User-visible replies are deterministic strings derived from data,
// never raw error messages from the store or upstream APIs.
const (
	// ReplyFallback is returned for any unrecognized or missing action
	ReplyFallback = "Désolé, je n'ai pas compris votre demande. Un conseiller vous répondra bientôt."

	// ReplyContactUpdated confirms a create_contact profile update
	ReplyContactUpdated = "Vos informations ont bien été enregistrées."

	// ReplyNoProducts is returned when the catalog is empty
	ReplyNoProducts = "Aucun produit n'est disponible pour le moment."

	// ReplyAskProduct prompts for the product name when create_order
	// arrives without one
	ReplyAskProduct = "Quel produit souhaitez-vous commander ?"

	// ReplyApology is the generic message sent when an internal failure
	// prevents handling; internal detail is never forwarded to the user
	ReplyApology = "Désolé, une erreur est survenue. Veuillez réessayer plus tard."
)

// Reply format strings
const (
	// ProductLineFormat renders one product as "name: price"
	ProductLineFormat = "%s: %s"

	// ProductNotFoundFormat is the deterministic not-found reply for
	// create_order; distinct from any success reply
	ProductNotFoundFormat = "Désolé, le produit %q est introuvable."

	// OrderConfirmedFormat confirms an order with product and price
	OrderConfirmedFormat = "Votre commande de %q à %s a bien été enregistrée. Merci !"
)
