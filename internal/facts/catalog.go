package facts

import "github.com/techfacts/factbot/internal/store"

// RandomKeys is the closed set a "random" request draws from. It is a static
// list, not the store's key set: kubernetes and cosmos are seeded but never
// drawn, and a listed key missing from the store resolves as not found.
var RandomKeys = []string{
	"description", "released", "global", "regions",
	"geographies", "platforms", "categories", "products", "cognitive",
	"compliance", "first", "certifications", "competition", "functions",
}

// TopicList is the human-readable list shown by the help card.
const TopicList = "Certifications, Cognitive Services, Competition, Compliance, First Offering, Functions, " +
	"Geographies, Global Infrastructure, Platforms, Categories, Products, Regions, and Release Date"

// Seed returns the reference fact documents loaded by the seed command.
func Seed() []store.Fact {
	return []store.Fact{
		{
			Key:   "categories",
			Title: "Product Categories",
			Image: "image-04.png",
			Body:  "Microsoft Azure offer eighteen categories of products, including Compute, Containers, Databases, Mobile, Networking, and Security.",
		},
		{
			Key:   "certifications",
			Title: "Azure Certifications",
			Image: "image-06.png",
			Body:  "As of June 2018, Microsoft offered ten Azure certification exams, allowing IT professionals the ability to differentiate themselves and validate their knowledge and skills.",
		},
		{
			Key:   "cognitive",
			Title: "Cognitive Services",
			Image: "image-09.png",
			Body:  "Azure's intelligent algorithms allow apps to see, hear, speak, understand and interpret user needs through natural methods of communication.",
		},
		{
			Key:   "competition",
			Title: "Azure's Competition",
			Image: "image-05.png",
			Body:  "According to the G2 Crowd website, Azure's Cloud competitors include Amazon Web Services (AWS), Digital Ocean, Google Compute Engine (GCE), and Rackspace.",
		},
		{
			Key:   "compliance",
			Title: "Compliance",
			Image: "image-06.png",
			Body:  "Microsoft provides the most comprehensive set of compliance offerings (including certifications and attestations) of any cloud service provider.",
		},
		{
			Key:   "cosmos",
			Title: "Azure Cosmos DB",
			Image: "image-17.png",
			Body:  "According to Microsoft, Cosmos DB is a globally distributed, multi-model database service, designed for low latency and scalable applications anywhere in the world, with native support for NoSQL.",
		},
		{
			Key:   "description",
			Title: "What is Azure?",
			Image: "image-01.png",
			Body:  "According to Wikipedia, Microsoft Azure is a cloud computing service created by Microsoft for building, testing, deploying, and managing applications and services through a global network of Microsoft-managed data centers.",
		},
		{
			Key:   "first",
			Title: "Azure SQL",
			Image: "image-08.png",
			Body:  "According to Wikipedia, Microsoft announced SQL Azure Relational Database in March, 2009. Other early Azure products included AppFabric Service Bus, Access Control, and Windows Azure Drive, According to Microsoft.",
		},
		{
			Key:   "functions",
			Title: "Azure Functions",
			Image: "image-14.png",
			Body:  "According to Microsoft, Azure Functions is a serverless compute service that enables you to run code on-demand without having to explicitly provision or manage infrastructure.",
		},
		{
			Key:   "geographies",
			Title: "Azure Geography",
			Image: "image-07.png",
			Body:  "According to Microsoft, Azure regions are organized into geographies. An Azure geography ensures that data residency, sovereignty, compliance, and resiliency requirements are honored within geographical boundaries.",
		},
		{
			Key:   "global",
			Title: "Azure Regions",
			Image: "image-02.png",
			Body:  "According to Microsoft, as of June, 2018, with 54 Azure regions, Azure has more global regions than any other cloud provider. Azure is currently available in 140 countries.",
		},
		{
			Key:   "kubernetes",
			Title: "Azure Kubernetes Service (AKS)",
			Image: "image-18.png",
			Body:  "According to Microsoft, Azure Kubernetes Service (AKS) is a fully managed Kubernetes container orchestration service, which simplifies Kubernetes management, deployment, and operations.",
		},
		{
			Key:   "platforms",
			Title: "Product Categories",
			Image: "image-10.png",
			Body:  "According to Wikipedia, Azure provides Software as a Service (SaaS), Containers as a Service (CaaS), Platform as a Service (PaaS), and Infrastructure as a Service (IaaS).",
		},
		{
			Key:   "products",
			Title: "Azure Products",
			Image: "image-12.png",
			Body:  "Microsoft offers over 500 products within eighteen categories, including Machine Learning, Analytics, Functions, Containers, CosmosDB, and Visual Studio Team Services.",
		},
		{
			Key:   "regions",
			Title: "Global Network",
			Image: "image-13.png",
			Body:  "According to Microsoft, an Azure region is a set of datacenters deployed within a latency-defined perimeter and connected through a dedicated regional low-latency network.",
		},
		{
			Key:   "released",
			Title: "First Released",
			Image: "image-11.png",
			Body:  "According to Wikipedia, Azure was released on February 1, 2010 as 'Windows Azure' before being renamed 'Microsoft Azure' on March 25, 2014.",
		},
	}
}
