// Package clusterconfig builds the cluster configuration document handed to
// the platform installer.
//
// [Builder.Build] turns a topology and install method into a
// [ClusterConfig]: the ordered master and agent address lists, the
// coordination endpoint on the boot machine, the bootstrap URL the nodes
// fetch artifacts from, and the DNS resolvers. [ClusterConfig.Render] and
// [Parse] convert it to and from its YAML form.
package clusterconfig
